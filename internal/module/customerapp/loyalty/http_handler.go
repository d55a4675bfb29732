package loyalty

import (
	"net/http"

	"github.com/gorilla/mux"

	internalMiddleware "github.com/soleterra-wellness/sw-booking/internal/pkg/middleware"
	"github.com/soleterra-wellness/sw-booking/pkg/errors"
	publicMiddleware "github.com/soleterra-wellness/sw-booking/pkg/middleware"
	"github.com/soleterra-wellness/sw-booking/pkg/response"
	"github.com/soleterra-wellness/sw-booking/pkg/status"
)

type HTTPHandler struct {
	LoyaltyUseCase LoyaltyUseCase
}

func InitHTTPHandler(router *mux.Router, customerSession *internalMiddleware.CustomerSession, loyaltyUseCase LoyaltyUseCase) {
	handler := &HTTPHandler{
		LoyaltyUseCase: loyaltyUseCase,
	}

	router.HandleFunc("/sw-booking/v1/customerapp/loyalty", publicMiddleware.SetRouteChain(handler.GetAccount, customerSession.Verify)).Methods(http.MethodGet)
}

func (handler HTTPHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp, err := handler.LoyaltyUseCase.GetAccount(ctx)
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}
	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "loyalty account",
		Data:    resp,
		Meta:    nil,
	})
}
