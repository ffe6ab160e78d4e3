package handler

import (
	"net/http"

	"github.com/Vishal-43/img-craft/internal/transport/http/view"
)

// PageHandler serves pages that need no session state.
type PageHandler struct {
	views *view.Renderer
}

func NewPageHandler(views *view.Renderer) *PageHandler { return &PageHandler{views: views} }

func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.views, view.PageHome, view.Data{})
}
