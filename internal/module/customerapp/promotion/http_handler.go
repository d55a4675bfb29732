package promotion

import (
	"net/http"

	"github.com/gorilla/mux"

	publicMiddleware "github.com/soleterra-wellness/sw-booking/pkg/middleware"
	"github.com/soleterra-wellness/sw-booking/pkg/response"
	"github.com/soleterra-wellness/sw-booking/pkg/status"
)

type HTTPHandler struct{}

func InitHTTPHandler(router *mux.Router) {
	handler := &HTTPHandler{}

	router.HandleFunc("/sw-booking/v1/customerapp/promotions", publicMiddleware.SetRouteChain(handler.GetManyPromotion)).Methods(http.MethodGet)
}

func (handler HTTPHandler) GetManyPromotion(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "list of promotions",
		Data:    Catalog,
		Meta:    nil,
	})
}
