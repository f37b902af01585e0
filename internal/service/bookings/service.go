package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/m04kA/ayurveda-booking-service/internal/domain"
	bookingRepo "github.com/m04kA/ayurveda-booking-service/internal/infra/storage/booking"
	"github.com/m04kA/ayurveda-booking-service/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
// Доступ: клиент видит свои бронирования, специалист (userID == practitionerID) - бронирования к себе
type Service struct {
	bookingRepo BookingRepository
	loc         *time.Location
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, loc *time.Location, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		loc:         loc,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - бронирование видят только его клиент и специалист
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !booking.IsParticipant(userID) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking, s.loc), nil
}

// GetClientBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%d, status=%v", req.ClientID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientBookings: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByClientID(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: successfully fetched %d bookings for client=%d", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings, s.loc), nil
}

// GetPractitionerBookings получает бронирования специалиста с фильтрацией
// Доступно только самому специалисту
//
// Примеры использования:
// - Все активные бронирования: только PractitionerID
// - Бронирования за день: StartDate и EndDate указывают на одну дату
// - Только подтвержденные: Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetPractitionerBookings(ctx context.Context, req *models.GetPractitionerBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetPractitionerBookings: fetching bookings for practitioner=%d, user=%d", req.PractitionerID, req.UserID)
	if req.StartDate != nil {
		logMsg += fmt.Sprintf(", from=%s", *req.StartDate)
	}
	if req.EndDate != nil {
		logMsg += fmt.Sprintf(", to=%s", *req.EndDate)
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	if req.UserID != req.PractitionerID {
		s.logger.Warn("GetPractitionerBookings: user=%d is not practitioner=%d", req.UserID, req.PractitionerID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter(s.loc)
	if err != nil {
		s.logger.Warn("GetPractitionerBookings: invalid filter for practitioner=%d: %v", req.PractitionerID, err)
		if errors.Is(err, models.ErrInvalidDateRange) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTimeRange, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.GetByPractitionerWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetPractitionerBookings: repository error for practitioner=%d: %v", req.PractitionerID, err)
		return nil, fmt.Errorf("%w: GetPractitionerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPractitionerBookings: successfully fetched %d bookings for practitioner=%d", len(bookings), req.PractitionerID)
	return models.FromDomainBookingList(bookings, s.loc), nil
}

// Cancel отменяет бронирование
// Клиент отменяет своё бронирование (cancelled_by_client)
// Специалист отменяет бронирование к себе (cancelled_by_practitioner)
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	if utf8.RuneCountInString(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason is longer than %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return err
	}

	// Определяем статус отмены по роли пользователя
	var cancelStatus domain.BookingStatus
	switch req.UserID {
	case booking.ClientID:
		cancelStatus = domain.StatusCancelledByClient
	case booking.PractitionerID:
		cancelStatus = domain.StatusCancelledByPractitioner
	default:
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
		return ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrCannotCancel) {
			// Статус успел измениться между чтением и обновлением
			s.logger.Warn("Cancel: booking id=%d changed status concurrently", bookingID)
			return ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d with status=%s", bookingID, cancelStatus)
	return nil
}

// UpdateStatus обновляет статус бронирования
// Доступно только специалисту; отмена выполняется через Cancel
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.UserID)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if newStatus == domain.StatusCancelledByClient || newStatus == domain.StatusCancelledByPractitioner {
		return fmt.Errorf("%w: use cancellation to cancel a booking", ErrInvalidInput)
	}

	booking, err := s.getBooking(ctx, "UpdateStatus", bookingID)
	if err != nil {
		return err
	}

	if booking.PractitionerID != req.UserID {
		s.logger.Warn("UpdateStatus: user=%d is not practitioner of booking id=%d", req.UserID, bookingID)
		return ErrAccessDenied
	}

	if !booking.IsActive() || booking.IsCompleted() {
		s.logger.Warn("UpdateStatus: booking id=%d is final, status=%s", bookingID, booking.Status)
		return ErrBookingFinal
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found during update", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}
