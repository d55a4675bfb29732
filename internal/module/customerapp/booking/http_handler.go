package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	internalMiddleware "github.com/soleterra-wellness/sw-booking/internal/pkg/middleware"
	"github.com/soleterra-wellness/sw-booking/pkg/errors"
	publicMiddleware "github.com/soleterra-wellness/sw-booking/pkg/middleware"
	"github.com/soleterra-wellness/sw-booking/pkg/response"
	"github.com/soleterra-wellness/sw-booking/pkg/status"
)

type HTTPHandler struct {
	Validate       *validator.Validate
	BookingUseCase BookingUseCase
}

func InitHTTPHandler(router *mux.Router, customerSession *internalMiddleware.CustomerSession, validate *validator.Validate, bookingUseCase BookingUseCase) {
	handler := &HTTPHandler{
		Validate:       validate,
		BookingUseCase: bookingUseCase,
	}

	router.HandleFunc("/sw-booking/v1/customerapp/bookings", publicMiddleware.SetRouteChain(handler.Checkout, customerSession.Verify)).Methods(http.MethodPost)
	router.HandleFunc("/sw-booking/v1/customerapp/bookings", publicMiddleware.SetRouteChain(handler.GetManyBooking, customerSession.Verify)).Methods(http.MethodGet)
	router.HandleFunc("/sw-booking/v1/customerapp/bookings/on-remind", publicMiddleware.SetRouteChain(handler.OnRemindBooking)).Methods(http.MethodPost)
	router.HandleFunc("/sw-booking/v1/customerapp/bookings/{bookingID}/cancel", publicMiddleware.SetRouteChain(handler.CancelBooking, customerSession.Verify)).Methods(http.MethodPost)
	router.HandleFunc("/sw-booking/v1/customerapp/slots", publicMiddleware.SetRouteChain(handler.GetSlots)).Methods(http.MethodGet)
}

func (handler HTTPHandler) validate(ctx context.Context, payload interface{}) error {
	err := handler.Validate.StructCtx(ctx, payload)
	if err == nil {
		return nil
	}

	errorFields := err.(validator.ValidationErrors)

	errMessages := make([]string, len(errorFields))

	for k, errorField := range errorFields {
		errMessages[k] = fmt.Sprintf("invalid '%s' with value '%v'", errorField.Field(), errorField.Value())
	}

	errorMessage := strings.Join(errMessages, ", ")

	return fmt.Errorf(errorMessage)
}

func (handler HTTPHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := CheckoutRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.JSON(w, http.StatusBadRequest, response.RESTEnvelope{
			Status:  status.BAD_REQUEST,
			Message: "invalid request payload",
		})

		return
	}

	resp, err := handler.BookingUseCase.Checkout(ctx, req)
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}
	response.JSON(w, http.StatusCreated, response.RESTEnvelope{
		Status:  status.CREATED,
		Message: "booking confirmed",
		Data:    resp,
		Meta:    nil,
	})
}

func (handler HTTPHandler) GetManyBooking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	qs := r.URL.Query()
	offset, _ := strconv.ParseInt(qs.Get("offset"), 10, 64)
	limit, _ := strconv.ParseInt(qs.Get("limit"), 10, 64)

	resp, err := handler.BookingUseCase.GetManyBooking(ctx, offset, limit)
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
		Message: "list of bookings",
		Data:    resp,
		Meta:    nil,
	})
}

func (handler HTTPHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	vars := mux.Vars(r)
	bookingID := vars["bookingID"]

	resp, err := handler.BookingUseCase.CancelBooking(ctx, bookingID)
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
		Message: "booking cancelled",
		Data:    resp,
		Meta:    nil,
	})
}

func (handler HTTPHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	qs := r.URL.Query()

	req := GetSlotsRequest{
		Branch: qs.Get("branch"),
		Date:   qs.Get("date"),
	}

	if err := handler.validate(ctx, req); err != nil {
		response.JSON(w, http.StatusBadRequest, response.RESTEnvelope{
			Status:  status.BAD_REQUEST,
			Message: err.Error(),
		})

		return
	}

	resp, err := handler.BookingUseCase.GetSlots(ctx, req)
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
		Message: "timetable for branch",
		Data:    resp,
		Meta:    nil,
	})
}

func (handler HTTPHandler) OnRemindBooking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	e := RemindBookingEvent{}
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		response.JSON(w, http.StatusBadRequest, response.RESTEnvelope{
			Status:  status.BAD_REQUEST,
			Message: "invalid request payload",
		})

		return
	}

	if err := handler.BookingUseCase.OnRemindBooking(ctx, e); err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}
	response.JSON(w, http.StatusOK, response.RESTEnvelope{
		Status:  status.OK,
		Message: "booking reminder processed",
		Meta:    nil,
	})
}
