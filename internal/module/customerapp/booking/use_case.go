package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/cart"
	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/catalog"
	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/loyalty"
	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/notification"
	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/pricing"
	"github.com/soleterra-wellness/sw-booking/internal/module/customerapp/promotion"
	"github.com/soleterra-wellness/sw-booking/internal/pkg/session"
	"github.com/soleterra-wellness/sw-booking/internal/pkg/util"
	"github.com/soleterra-wellness/sw-booking/pkg/errors"
	"github.com/soleterra-wellness/sw-booking/pkg/gctasks"
	"github.com/soleterra-wellness/sw-booking/pkg/pubsub"
	"github.com/soleterra-wellness/sw-booking/pkg/status"
)

type BookingUseCase interface {
	Checkout(ctx context.Context, req CheckoutRequest) (CheckoutResponse, error)
	GetManyBooking(ctx context.Context, offset, limit int64) (GetManyBookingResponse, error)
	CancelBooking(ctx context.Context, ID string) (BookingResponse, error)
	GetSlots(ctx context.Context, req GetSlotsRequest) (GetSlotsResponse, error)
	OnRemindBooking(ctx context.Context, e RemindBookingEvent) error
}

type bookingUseCase struct {
	logger                 *logrus.Logger
	timeout                time.Duration
	baseURL                string
	reminderLead           time.Duration
	reminderQueue          string
	confirmedTopic         string
	cancelledTopic         string
	bookingRepository      BookingRepository
	accountRepository      loyalty.AccountRepository
	ledgerRepository       loyalty.LedgerRepository
	notificationRepository notification.NotificationRepository
	publisher              pubsub.Publisher
	cloudTask              gctasks.Client
}

type BookingUseCaseProperty struct {
	Logger                 *logrus.Logger
	Timeout                time.Duration
	BaseURL                string
	ReminderLead           time.Duration
	ReminderQueue          string
	ConfirmedTopic         string
	CancelledTopic         string
	BookingRepository      BookingRepository
	AccountRepository      loyalty.AccountRepository
	LedgerRepository       loyalty.LedgerRepository
	NotificationRepository notification.NotificationRepository
	Publisher              pubsub.Publisher
	CloudTask              gctasks.Client
}

func NewBookingUseCase(props BookingUseCaseProperty) BookingUseCase {
	return &bookingUseCase{
		logger:                 props.Logger,
		timeout:                props.Timeout,
		baseURL:                props.BaseURL,
		reminderLead:           props.ReminderLead,
		reminderQueue:          props.ReminderQueue,
		confirmedTopic:         props.ConfirmedTopic,
		cancelledTopic:         props.CancelledTopic,
		bookingRepository:      props.BookingRepository,
		accountRepository:      props.AccountRepository,
		ledgerRepository:       props.LedgerRepository,
		notificationRepository: props.NotificationRepository,
		publisher:              props.Publisher,
		cloudTask:              props.CloudTask,
	}
}

// Checkout implements BookingUseCase. It freezes the draft's pricing, claims
// the slot, settles the loyalty accounting in one transaction, then fans out
// the confirmation event, the deferred reminder task and the notification.
func (u *bookingUseCase) Checkout(ctx context.Context, req CheckoutRequest) (CheckoutResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	sess, err := session.GetAccountFromCtx(ctx)
	if err != nil {
		return CheckoutResponse{}, err
	}

	now := time.Now().UTC()
	draft := req.Canonical()

	if err := u.validateDraft(draft, now); err != nil {
		return CheckoutResponse{}, err
	}

	day := draft.StartAt.UTC().Format(slotDayLayout)
	hhmm := draft.StartAt.UTC().Format(slotTimeLayout)

	if err := u.ensureSlotFree(ctx, draft.Branch, day, hhmm); err != nil {
		return CheckoutResponse{}, err
	}

	acc, accountIsNew, err := u.loadOrBuildAccount(ctx, sess)
	if err != nil {
		return CheckoutResponse{}, err
	}

	computed := cart.Compute(draft)
	sel := pricing.Choose(promotion.Evaluate(draft), loyalty.EvaluateReward(draft, acc))

	b := u.buildBooking(sess, draft, computed, sel, now)

	var redeemedRewardID string
	if sel.Type == pricing.TypeReward {
		redeemedRewardID = draft.LoyaltyRewardID
	}

	accrual := loyalty.Accrue(b.TotalAmount, redeemedRewardID, acc, now)

	tx, err := u.bookingRepository.BeginTx(ctx)
	if err != nil {
		return CheckoutResponse{}, err
	}

	if err := u.bookingRepository.Save(ctx, b, tx); err != nil {
		u.bookingRepository.Rollback(ctx, tx)
		return CheckoutResponse{}, err
	}

	if accountIsNew {
		err = u.accountRepository.Save(ctx, accrual.Account, tx)
	} else {
		err = u.accountRepository.Update(ctx, sess.ID, accrual.Account, tx)
	}
	if err != nil {
		u.bookingRepository.Rollback(ctx, tx)
		return CheckoutResponse{}, err
	}

	if err := u.ledgerRepository.SaveMany(ctx, sess.ID, accrual.Appended, tx); err != nil {
		u.bookingRepository.Rollback(ctx, tx)
		return CheckoutResponse{}, err
	}

	if err := u.bookingRepository.CommitTx(ctx, tx); err != nil {
		return CheckoutResponse{}, err
	}

	bookingBuff, _ := json.Marshal(BookingConfirmedEvent{Booking: b})
	u.publisher.Publish(ctx, u.confirmedTopic, uuid.New().String(), nil, bookingBuff)

	u.scheduleReminder(ctx, b)
	u.notifyConfirmation(ctx, b)

	resp := CheckoutResponse{ClearRewardSelection: accrual.ClearRewardSelection}
	resp.PopulateFromEntity(b, now)

	return resp, nil
}

// GetManyBooking implements BookingUseCase.
func (u *bookingUseCase) GetManyBooking(ctx context.Context, offset, limit int64) (GetManyBookingResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	sess, err := session.GetAccountFromCtx(ctx)
	if err != nil {
		return GetManyBookingResponse{}, err
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	bookings, err := u.bookingRepository.FindManyByCustomerID(ctx, sess.ID, offset, limit, nil)
	if err != nil {
		return GetManyBookingResponse{}, err
	}

	total, err := u.bookingRepository.Count(ctx, sess.ID, nil)
	if err != nil {
		return GetManyBookingResponse{}, err
	}

	now := time.Now().UTC()
	resp := GetManyBookingResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Total:    total,
	}
	for _, b := range bookings {
		br := BookingResponse{}
		br.PopulateFromEntity(b, now)
		resp.Bookings = append(resp.Bookings, br)
	}

	return resp, nil
}

// CancelBooking implements BookingUseCase. Cancellation frees the slot but
// never unwinds the loyalty accounting of the original checkout.
func (u *bookingUseCase) CancelBooking(ctx context.Context, ID string) (BookingResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	sess, err := session.GetAccountFromCtx(ctx)
	if err != nil {
		return BookingResponse{}, err
	}

	b, err := u.bookingRepository.FindByID(ctx, ID, nil)
	if err != nil {
		return BookingResponse{}, err
	}

	if b.CustomerID != sess.ID {
		return BookingResponse{}, errors.New(http.StatusForbidden, status.FORBIDDEN, "booking belongs to another customer")
	}

	now := time.Now().UTC()
	if !b.Cancelable(now) {
		return BookingResponse{}, errors.New(http.StatusUnprocessableEntity, status.UNPROCESSABLE_ENTITY, "booking can no longer be cancelled")
	}

	b.Status = StatusCancelled
	b.UpdatedAt = now
	b.CancelledAt = &now

	if err := u.bookingRepository.Update(ctx, ID, b, nil); err != nil {
		return BookingResponse{}, err
	}

	bookingBuff, _ := json.Marshal(BookingCancelledEvent{Booking: b})
	u.publisher.Publish(ctx, u.cancelledTopic, uuid.New().String(), nil, bookingBuff)

	resp := BookingResponse{}
	resp.PopulateFromEntity(b, now)

	return resp, nil
}

// GetSlots implements BookingUseCase.
func (u *bookingUseCase) GetSlots(ctx context.Context, req GetSlotsRequest) (GetSlotsResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	if !catalog.ValidBranch(req.Branch) {
		return GetSlotsResponse{}, errors.New(http.StatusBadRequest, status.BAD_REQUEST, fmt.Sprintf("branch '%s' is not recognized", req.Branch))
	}

	dayStart, err := time.Parse(slotDayLayout, req.Date)
	if err != nil {
		return GetSlotsResponse{}, errors.New(http.StatusBadRequest, status.BAD_REQUEST, "date is not in a recognized format")
	}
	dayEnd := dayStart.Add(24 * time.Hour)

	existing, err := u.bookingRepository.FindManyByBranchAndDay(ctx, req.Branch, dayStart, dayEnd, nil)
	if err != nil {
		return GetSlotsResponse{}, err
	}

	slots, err := BuildSlots(req.Date, existing, time.Now().UTC())
	if err != nil {
		return GetSlotsResponse{}, err
	}

	return GetSlotsResponse{
		Branch: req.Branch,
		Date:   req.Date,
		Slots:  slots,
	}, nil
}

// OnRemindBooking implements BookingUseCase. It is invoked by the deferred
// task scheduled at checkout; cancelled bookings are skipped quietly.
func (u *bookingUseCase) OnRemindBooking(ctx context.Context, e RemindBookingEvent) error {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	b, err := u.bookingRepository.FindByID(ctx, e.ID, nil)
	if err != nil {
		return err
	}

	if b.Status != StatusConfirmed {
		return nil
	}

	m := notification.Message{
		Recipient: b.CustomerEmail,
		Subject:   "Your appointment is coming up",
		Body:      fmt.Sprintf("Hi %s, a reminder of your %s at %s on %s.", b.CustomerName, b.Service, b.Branch, b.StartAt.UTC().Format("2006-01-02 15:04")),
	}
	if err := u.notificationRepository.Send(ctx, m); err != nil {
		return err
	}

	return nil
}

func (u *bookingUseCase) validateDraft(draft *cart.Draft, now time.Time) error {
	if !catalog.ValidBranch(draft.Branch) {
		return errors.New(http.StatusBadRequest, status.BAD_REQUEST, fmt.Sprintf("branch '%s' is not recognized", draft.Branch))
	}

	if draft.StartAt.IsZero() {
		return errors.New(http.StatusBadRequest, status.BAD_REQUEST, "booking start time is required")
	}

	hhmm := draft.StartAt.UTC().Format(slotTimeLayout)
	if !catalog.ValidTimeSlot(hhmm) {
		return errors.New(http.StatusBadRequest, status.BAD_REQUEST, fmt.Sprintf("time slot '%s' is not on the timetable", hhmm))
	}

	if !draft.StartAt.After(now) {
		return errors.New(http.StatusUnprocessableEntity, status.UNPROCESSABLE_ENTITY, "booking start time is already in the past")
	}

	return nil
}

func (u *bookingUseCase) ensureSlotFree(ctx context.Context, branch, day, hhmm string) error {
	dayStart, err := time.Parse(slotDayLayout, day)
	if err != nil {
		return errors.New(http.StatusBadRequest, status.BAD_REQUEST, "date is not in a recognized format")
	}
	dayEnd := dayStart.Add(24 * time.Hour)

	existing, err := u.bookingRepository.FindManyByBranchAndDay(ctx, branch, dayStart, dayEnd, nil)
	if err != nil {
		return err
	}

	for _, b := range existing {
		if b.StartAt.UTC().Format(slotTimeLayout) == hhmm {
			return errors.New(http.StatusConflict, status.CONFLICT, fmt.Sprintf("slot '%s' is already taken", SlotKey(day, hhmm, branch)))
		}
	}

	return nil
}

func (u *bookingUseCase) loadOrBuildAccount(ctx context.Context, sess session.Account) (loyalty.Account, bool, error) {
	acc, err := u.accountRepository.FindByCustomerID(ctx, sess.ID, nil)
	if err == nil {
		return acc, false, nil
	}

	ae := errors.Destruct(err)
	if ae.HTTPStatusCode != http.StatusNotFound {
		return loyalty.Account{}, false, err
	}

	if sess.CardNumber != "" && !loyalty.ValidCardNumber(sess.CardNumber) {
		return loyalty.Account{}, false, errors.New(http.StatusUnprocessableEntity, status.UNPROCESSABLE_ENTITY, "loyalty card number fails its check digit")
	}

	now := time.Now().UTC()
	acc = loyalty.Account{
		CustomerID: sess.ID,
		CardNumber: sess.CardNumber,
		Tier:       loyalty.TierFor(0).Name,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	return acc, true, nil
}

func (u *bookingUseCase) buildBooking(sess session.Account, draft *cart.Draft, computed cart.Cart, sel pricing.Selection, now time.Time) Booking {
	b := Booking{
		ID:                  util.GenerateTimestampWithPrefix("WB"),
		CustomerID:          sess.ID,
		CustomerName:        sess.Name,
		CustomerEmail:       sess.Email,
		Province:            draft.Province,
		Branch:              draft.Branch,
		Service:             computed.Service,
		ServicePrice:        computed.ServicePrice,
		Products:            computed.ProductLines,
		ProductsSubtotal:    computed.ProductsSubtotal,
		PreDiscountTotal:    computed.PreDiscountTotal,
		StartAt:             draft.StartAt.UTC(),
		EndAt:               draft.EndAt.UTC(),
		TherapistName:       draft.TherapistName,
		OilFragrance:        draft.OilFragrance,
		MassageIntensity:    draft.MassageIntensity,
		SpecialInstructions: draft.SpecialInstructions,
		Status:              StatusConfirmed,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if b.EndAt.IsZero() || !b.EndAt.After(b.StartAt) {
		b.EndAt = b.StartAt.Add(time.Duration(catalog.ServiceDurationMinutes) * time.Minute)
	}

	switch sel.Type {
	case pricing.TypePromo:
		b.PromoCode = sel.Promo.Code
		b.PromoSavings = sel.Amount
	case pricing.TypeReward:
		b.LoyaltyRewardID = sel.Reward.ID
		b.LoyaltySavings = sel.Amount
	}

	total := b.PreDiscountTotal - sel.Amount
	if total < 0 {
		total = 0
	}
	b.TotalAmount = total

	return b
}

func (u *bookingUseCase) scheduleReminder(ctx context.Context, b Booking) {
	remindAt := b.StartAt.Add(-u.reminderLead)
	if !remindAt.After(time.Now().UTC()) {
		return
	}

	eventBuff, _ := json.Marshal(RemindBookingEvent{ID: b.ID, StartAt: b.StartAt})
	tasksRequest := gctasks.Request{
		URL:    fmt.Sprintf("%s/sw-booking/v1/customerapp/bookings/on-remind", u.baseURL),
		Method: cloudtaskspb.HttpMethod_POST,
		Header: map[string]string{"Content-Type": "application/json"},
		Body:   eventBuff,
	}
	if err := u.cloudTask.DeferCreateTaskAt(u.reminderQueue, tasksRequest, remindAt); err != nil {
		u.logger.WithContext(ctx).WithError(err).Error()
	}
}

func (u *bookingUseCase) notifyConfirmation(ctx context.Context, b Booking) {
	m := notification.Message{
		Recipient: b.CustomerEmail,
		Subject:   "Booking confirmed",
		Body:      fmt.Sprintf("Hi %s, your %s at %s on %s is confirmed. Total R%d.", b.CustomerName, b.Service, b.Branch, b.StartAt.UTC().Format("2006-01-02 15:04"), b.TotalAmount),
	}
	if err := u.notificationRepository.Send(ctx, m); err != nil {
		u.logger.WithContext(ctx).WithError(err).Error()
	}
}
