package domain

// Waypoint - точка патрулирования.
// Неизменяема после загрузки уровня: секвенсор копирует LookAngles.
type Waypoint struct {
	Pos Vec2 `json:"pos"`

	// LookAngles - скрипт поворотов (радианы), выполняется по очереди
	LookAngles []float64 `json:"lookAngles,omitempty"`

	MoveDelay     int     `json:"moveDelay"`     // Тики ожидания перед движением к следующей точке
	RotationDelay int     `json:"rotationDelay"` // Пауза между шагами скрипта
	RotationSpeed float64 `json:"rotationSpeed"` // рад/тик, 0 - берется из профиля
}

// HasScript проверяет, есть ли у точки скрипт поворотов
func (w Waypoint) HasScript() bool {
	return len(w.LookAngles) > 0
}
