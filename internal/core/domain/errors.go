package domain

import "errors"

var (
	// ErrAPIUnavailable - транспортная ошибка или не-2xx ответ API объявлений
	ErrAPIUnavailable = errors.New("listings api unavailable")
	// ErrInvalidResponse - ответ не прошел разбор или проверку контракта
	ErrInvalidResponse = errors.New("invalid listings api response")
	ErrListingNotFound = errors.New("listing not found")

	ErrQueryTooShort      = errors.New("search text is too short")
	ErrInvalidLimit       = errors.New("limit out of range")
	ErrUnknownFilter      = errors.New("unknown filter field")
	ErrInvalidFilterValue = errors.New("invalid filter value")

	ErrSessionNotFound = errors.New("search session not found")

	// ErrGeocodingFailed - ошибка внешнего провайдера геокодирования
	ErrGeocodingFailed = errors.New("geocoding failed")
)
