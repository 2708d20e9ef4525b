package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	GameNotFound        failure.ErrorCode = "GameNotFound"
	InvalidAppID        failure.ErrorCode = "InvalidAppID"
	InvalidTable        failure.ErrorCode = "InvalidTable"
	InvalidReturnColumn failure.ErrorCode = "InvalidReturnColumn"
	InvalidLimit        failure.ErrorCode = "InvalidLimit"
	InvalidHashName     failure.ErrorCode = "InvalidHashName"
	InvalidHistory      failure.ErrorCode = "InvalidHistoryWindow"
	RefreshInProgress   failure.ErrorCode = "RefreshInProgress"
)
