package http

import (
	"encoding/json"
	"net/http"

	"github.com/hadirku/hadirku-backend-go/internal/domain/config"
	"github.com/hadirku/hadirku-backend-go/internal/handler/http/response"
)

type ConfigHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	SetOfficeLocation(w http.ResponseWriter, r *http.Request)
}

type configHandlerImpl struct {
	configService config.ConfigService
}

func NewConfigHandler(configService config.ConfigService) ConfigHandler {
	return &configHandlerImpl{
		configService: configService,
	}
}

// Get implements ConfigHandler. Readable by any authenticated user so the
// client can show the geofence before a check-in attempt.
func (h *configHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.configService.Get(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SetOfficeLocation implements ConfigHandler.
func (h *configHandlerImpl) SetOfficeLocation(w http.ResponseWriter, r *http.Request) {
	var req config.SetOfficeLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.configService.SetOfficeLocation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Office location updated", result)
}
