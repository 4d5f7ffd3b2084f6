package contracts

// defaultTemplate шаблон договора по умолчанию
// Используется, когда в конфигурации не указан путь к файлу шаблона
const defaultTemplate = `CONTRATO DE PRESTACAO DE SERVICOS - AULA PRATICA DE DIRECAO
Reserva #{{.BookingID}}

CONTRATANTE (Aluno): {{.StudentName}} ({{.StudentEmail}})
CONTRATADO (Instrutor): {{.InstructorName}} - {{.City}}/{{.State}}

1. OBJETO
Aula pratica de direcao veicular com duracao de {{.DurationMinutes}} minutos,
agendada para {{.LessonDate}} as {{.LessonTime}}.

2. VALORES
Valor da aula: R$ {{.Price}}
Taxa da plataforma: R$ {{.PlatformFee}}
Repasse ao instrutor: R$ {{.InstructorAmount}}

3. CANCELAMENTO
O cancelamento sem penalidade e permitido ate {{.CancellationWindowHours}} horas
antes do horario agendado.

Documento gerado em {{.GeneratedAt}}. Este documento e imutavel: os dados acima
foram congelados no momento da reserva.
`

// ContractData данные для рендеринга договора
// Все поля замораживаются в момент резервирования
type ContractData struct {
	BookingID               int64
	StudentName             string
	StudentEmail            string
	InstructorName          string
	City                    string
	State                   string
	LessonDate              string
	LessonTime              string
	DurationMinutes         int
	Price                   string
	PlatformFee             string
	InstructorAmount        string
	CancellationWindowHours int
	GeneratedAt             string
}
