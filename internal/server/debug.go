package server

import (
	"encoding/json"
	"net/http"
	"ursa-server/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/instances", h.handleListInstances)
	mux.HandleFunc("/debug/agents", h.handleDumpAgents)
}

// /debug/instances - список уровней и их тики
func (h *DebugHandler) handleListInstances(w http.ResponseWriter, r *http.Request) {
	summary := make([]engine.InstanceSummary, 0)
	for _, name := range h.Service.LevelNames() {
		summary = append(summary, h.Service.Instance(name).Summary())
	}
	writeJSON(w, summary)
}

// /debug/agents?level=warehouse - записи контроллеров, память и маршруты
func (h *DebugHandler) handleDumpAgents(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("level")
	if name == "" {
		name = h.Service.DefaultLevel()
	}

	instance := h.Service.Instance(name)
	if instance == nil {
		http.Error(w, "Instance not found", http.StatusNotFound)
		return
	}

	writeJSON(w, instance.DebugAgents())
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Если data == nil, возвращаем пустой массив [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
