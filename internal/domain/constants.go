package domain

// Параметры симуляции по умолчанию
const (
	DefaultTickRate  = 30   // тиков в секунду
	DefaultAgentSize = 16.0 // диаметр агента в пикселях
	PlayerSpeed      = 2.0  // пикс/тик при полном отклонении
)

// Типы записей лога уровня
const (
	LogTypeInfo   = "INFO"
	LogTypeAlert  = "ALERT"
	LogTypeCaught = "CAUGHT"
	LogTypeAdmin  = "ADMIN"
)
