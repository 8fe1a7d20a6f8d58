package handlers

import (
	"time"

	"github.com/m04kA/bookit/internal/domain"
)

// ReservationView представление бронирования в API.
// confirmed и notConfirmed выводятся из статуса и не могут быть true одновременно.
type ReservationView struct {
	ID           string `json:"id"`
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone,omitempty"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Status       string `json:"status"`
	Confirmed    bool   `json:"confirmed"`
	NotConfirmed bool   `json:"notConfirmed"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// NotificationView результат рассылки уведомлений
type NotificationView struct {
	Delivered bool   `json:"delivered"`
	Sent      int    `json:"sent"`
	Failed    int    `json:"failed"`
	Error     string `json:"error,omitempty"`
}

// ReservationResult ответ операций, которые изменяют бронирование
type ReservationResult struct {
	Reservation  ReservationView  `json:"reservation"`
	Notification NotificationView `json:"notification"`
}

// AccountView представление аккаунта в API
type AccountView struct {
	ID                 string `json:"id"`
	Email              string `json:"email"`
	Name               string `json:"name,omitempty"`
	Phone              string `json:"phone,omitempty"`
	UserType           string `json:"userType"`
	RequestAdminAccess bool   `json:"requestAdminAccess"`
	Protected          bool   `json:"protected"`
	CreatedAt          string `json:"createdAt"`
}

// AccountSummaryView аккаунт с количеством бронирований
type AccountSummaryView struct {
	AccountView
	TotalReservations int `json:"totalReservations"`
}

// SlotView пара (date, time)
type SlotView struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// PolicyView представление политики бронирования
type PolicyView struct {
	AutoConfirm               bool       `json:"autoConfirm"`
	AllowMultipleReservations bool       `json:"allowMultipleReservations"`
	UnavailableTimes          []SlotView `json:"unavailableTimes"`
	UpdatedAt                 string     `json:"updatedAt,omitempty"`
}

func NewReservationView(r *domain.Reservation) ReservationView {
	return ReservationView{
		ID:           r.ID,
		UserID:       r.UserID,
		Name:         r.Name,
		ContactEmail: r.ContactEmail,
		ContactPhone: r.ContactPhone,
		Date:         r.Date,
		Time:         r.Time,
		Status:       string(r.Status),
		Confirmed:    r.IsConfirmed(),
		NotConfirmed: r.IsDenied(),
		CreatedAt:    formatTime(r.CreatedAt),
		UpdatedAt:    formatTime(r.UpdatedAt),
	}
}

func NewReservationViews(list []*domain.Reservation) []ReservationView {
	out := make([]ReservationView, 0, len(list))
	for _, r := range list {
		out = append(out, NewReservationView(r))
	}
	return out
}

func NewNotificationView(report domain.NotificationReport) NotificationView {
	v := NotificationView{
		Delivered: report.Delivered(),
		Sent:      report.Sent,
		Failed:    report.Failed,
	}
	if report.Err != nil {
		v.Error = report.Err.Error()
	}
	return v
}

func NewReservationResult(r *domain.Reservation, report domain.NotificationReport) ReservationResult {
	return ReservationResult{
		Reservation:  NewReservationView(r),
		Notification: NewNotificationView(report),
	}
}

func NewAccountView(a *domain.Account) AccountView {
	return AccountView{
		ID:                 a.ID,
		Email:              a.Email,
		Name:               a.Name,
		Phone:              a.Phone,
		UserType:           string(a.Type),
		RequestAdminAccess: a.RequestAdminAccess,
		Protected:          a.Protected,
		CreatedAt:          formatTime(a.CreatedAt),
	}
}

func NewAccountViews(list []*domain.Account) []AccountView {
	out := make([]AccountView, 0, len(list))
	for _, a := range list {
		out = append(out, NewAccountView(a))
	}
	return out
}

func NewAccountSummaryViews(list []*domain.AccountSummary) []AccountSummaryView {
	out := make([]AccountSummaryView, 0, len(list))
	for _, s := range list {
		out = append(out, AccountSummaryView{
			AccountView:       NewAccountView(s.Account),
			TotalReservations: s.TotalReservations,
		})
	}
	return out
}

func NewPolicyView(p *domain.BookingPolicy) PolicyView {
	slots := make([]SlotView, 0, len(p.UnavailableTimes))
	for _, s := range p.UnavailableTimes {
		slots = append(slots, SlotView{Date: s.Date, Time: s.Time})
	}
	return PolicyView{
		AutoConfirm:               p.AutoConfirm,
		AllowMultipleReservations: p.AllowMultipleReservations,
		UnavailableTimes:          slots,
		UpdatedAt:                 formatTime(p.UpdatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
