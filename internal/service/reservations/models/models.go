package models

// ListReservationsRequest запрос администратора на бронирования за дату
type ListReservationsRequest struct {
	CallerID  string
	Date      string // YYYY-MM-DD
	Partition string // "" | all | confirmed | unconfirmed
}

// ListUserReservationsRequest запрос пользователя на собственные бронирования
type ListUserReservationsRequest struct {
	UserID    string
	Partition string
}
