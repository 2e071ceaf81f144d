package services

import "errors"

// Ошибки этапов конвейера. Клиенту они не показываются — обработчик
// возвращает общий текст, а этап попадает только в журнал сервера.
var (
	ErrLogWrite = errors.New("failed to write roster log")
	ErrRender   = errors.New("failed to render entry document")
	ErrDispatch = errors.New("failed to dispatch notification")
)
