package handlers

import (
	"net/http"
	"time"

	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/application/todos"
	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/domain"
	"github.com/JorneSaenen/auth-backend-FSD-2025/internal/infrastructure/http/middleware"
)

// TodosHandler serves GET /todos. Requires the session-cookie middleware.
type TodosHandler struct {
	listTodos *todos.ListTodos
}

func NewTodosHandler(listTodos *todos.ListTodos) *TodosHandler {
	return &TodosHandler{listTodos: listTodos}
}

type todoResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// List returns the authenticated user's todos as a JSON array.
func (h *TodosHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		writeErr(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	userID, err := domain.ParseUserID(identity.UserID)
	if err != nil {
		writeErr(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	list, err := h.listTodos.Execute(r.Context(), userID)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, genericErrMessage)
		return
	}
	items := make([]todoResponse, 0, len(list))
	for _, t := range list {
		items = append(items, todoResponse{
			ID:        t.ID.String(),
			UserID:    t.UserID.String(),
			Title:     t.Title,
			Completed: t.Completed,
			CreatedAt: t.CreatedAt,
			UpdatedAt: t.UpdatedAt,
		})
	}
	writeJSON(w, http.StatusOK, items)
}
