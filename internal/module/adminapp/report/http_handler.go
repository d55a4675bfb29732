package report

import (
	"context"
	"fmt"
	"net/http"
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
	Validate      *validator.Validate
	ReportUseCase ReportUseCase
}

func InitHTTPHandler(router *mux.Router, adminSession *internalMiddleware.AdminSession, validate *validator.Validate, reportUseCase ReportUseCase) {
	handler := &HTTPHandler{
		Validate:      validate,
		ReportUseCase: reportUseCase,
	}

	router.HandleFunc("/sw-booking/v1/adminapp/reports/branch-summary", publicMiddleware.SetRouteChain(handler.GetBranchSummary, adminSession.Verify)).Methods(http.MethodGet)
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

func (handler HTTPHandler) GetBranchSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	qs := r.URL.Query()

	req := GetBranchSummaryRequest{
		From: qs.Get("from"),
		To:   qs.Get("to"),
	}

	if err := handler.validate(ctx, req); err != nil {
		response.JSON(w, http.StatusBadRequest, response.RESTEnvelope{
			Status:  status.BAD_REQUEST,
			Message: err.Error(),
		})

		return
	}

	resp, err := handler.ReportUseCase.GetBranchSummary(ctx, req)
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
		Message: "branch summary report",
		Data:    resp,
		Meta:    nil,
	})
}
