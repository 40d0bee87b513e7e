package models

import "github.com/pkg/errors"

// таксономия ошибок ядра, проверяется через errors.Is
var (
	ErrNotFound          = errors.New("запись не найдена")
	ErrForbidden         = errors.New("операция недоступна")
	ErrInvalidTransition = errors.New("недопустимый переход статуса")
	ErrAlreadyResponded  = errors.New("ответ на приглашение уже дан")

	// конфликт бронирования: слот уже занят или занимается прямо сейчас
	ErrAlreadyScheduled      = errors.New("интервью уже назначено, сначала отмените текущую бронь")
	ErrReservationInProgress = errors.New("слот уже бронируется, попробуйте другое время")

	// конфликт версий записи, обрабатывается повтором чтения-записи
	ErrConcurrentModification = errors.New("конкурентное изменение записи")

	// внешний календарь недоступен или отклонил запрос
	ErrExternalService = errors.New("ошибка внешнего сервиса календаря")
)
