package pricing

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	internalMiddleware "github.com/soleterra-wellness/sw-booking/internal/pkg/middleware"
	"github.com/soleterra-wellness/sw-booking/pkg/errors"
	publicMiddleware "github.com/soleterra-wellness/sw-booking/pkg/middleware"
	"github.com/soleterra-wellness/sw-booking/pkg/response"
	"github.com/soleterra-wellness/sw-booking/pkg/status"
)

type HTTPHandler struct {
	PricingUseCase PricingUseCase
}

func InitHTTPHandler(router *mux.Router, customerSession *internalMiddleware.CustomerSession, pricingUseCase PricingUseCase) {
	handler := &HTTPHandler{
		PricingUseCase: pricingUseCase,
	}

	router.HandleFunc("/sw-booking/v1/customerapp/quotes", publicMiddleware.SetRouteChain(handler.Quote, customerSession.Verify)).Methods(http.MethodPost)
}

func (handler HTTPHandler) Quote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := QuoteRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.JSON(w, http.StatusBadRequest, response.RESTEnvelope{
			Status:  status.BAD_REQUEST,
			Message: "invalid request payload",
		})

		return
	}

	resp, err := handler.PricingUseCase.Quote(ctx, req)
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
		Message: "quote computed",
		Data:    resp,
		Meta:    nil,
	})
}
