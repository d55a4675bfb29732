package report

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/soleterra-wellness/sw-booking/pkg/errors"
	"github.com/soleterra-wellness/sw-booking/pkg/status"
)

type ReportUseCase interface {
	GetBranchSummary(ctx context.Context, req GetBranchSummaryRequest) (GetBranchSummaryResponse, error)
}

type reportUseCase struct {
	logger           *logrus.Logger
	timeout          time.Duration
	reportRepository ReportRepository
}

type ReportUseCaseProperty struct {
	Logger           *logrus.Logger
	Timeout          time.Duration
	ReportRepository ReportRepository
}

func NewReportUseCase(props ReportUseCaseProperty) ReportUseCase {
	return &reportUseCase{
		logger:           props.Logger,
		timeout:          props.Timeout,
		reportRepository: props.ReportRepository,
	}
}

// GetBranchSummary implements ReportUseCase.
func (u *reportUseCase) GetBranchSummary(ctx context.Context, req GetBranchSummaryRequest) (GetBranchSummaryResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	from, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		return GetBranchSummaryResponse{}, errors.New(http.StatusBadRequest, status.BAD_REQUEST, "from date is not in a recognized format")
	}

	to, err := time.Parse("2006-01-02", req.To)
	if err != nil {
		return GetBranchSummaryResponse{}, errors.New(http.StatusBadRequest, status.BAD_REQUEST, "to date is not in a recognized format")
	}

	if !to.After(from) {
		return GetBranchSummaryResponse{}, errors.New(http.StatusBadRequest, status.BAD_REQUEST, "to date must be after from date")
	}

	summaries, err := u.reportRepository.AggregateByBranch(ctx, from, to.Add(24*time.Hour))
	if err != nil {
		return GetBranchSummaryResponse{}, err
	}

	return GetBranchSummaryResponse{
		From:     req.From,
		To:       req.To,
		Branches: summaries,
	}, nil
}
