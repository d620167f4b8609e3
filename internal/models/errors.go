package models

import "errors"

// Ошибки конвейера обработки хода. Все они ограничены одним ходом или запросом
// и никогда не завершают процесс.
var (
	// ErrTransport - сбой сети или сервиса при обращении к языковой модели.
	// Ход можно повторить с той же репликой, состояние сессии не меняется.
	ErrTransport = errors.New("narrative transport error")
	// ErrMalformedReply - ответ модели не удалось разобрать. Наружу не возвращается,
	// используется для пометки аномалий при подстановке безопасных значений.
	ErrMalformedReply = errors.New("malformed narrative reply")
	// ErrMediaFetch - сбой сервиса изображений или озвучки; медиа просто отсутствует.
	ErrMediaFetch = errors.New("media fetch failed")
	// ErrUnknownStyle - неизвестное имя пресета стиля; сообщается до любого сетевого вызова.
	ErrUnknownStyle = errors.New("unknown style preset")
	// ErrSessionTerminated - сессия уже достигла концовки; поможет только сброс.
	ErrSessionTerminated = errors.New("session has reached an ending")
	// ErrSessionNotFound - сессия с таким ID не найдена в хранилище.
	ErrSessionNotFound = errors.New("session not found")
)
