package database

import "errors"

// errRejected откатывает транзакцию, когда форма не прошла проверку;
// сами ошибки формы возвращаются отдельно
var errRejected = errors.New("rejected by validation")
