package errors

import (
	"fmt"
)

// Ошибки, текст которых показывается пользователю как есть.

type ErrUsage struct {
	Keyword string
	Usage   string
}

func (e *ErrUsage) Error() string {
	return "Usage: " + e.Usage
}

func (e *ErrUsage) Is(target error) bool {
	_, ok := target.(*ErrUsage)
	return ok
}

type ErrUnknownCommand struct {
	Command string
}

func (e *ErrUnknownCommand) Error() string {
	return "неизвестная команда: " + e.Command
}

func (e *ErrUnknownCommand) Is(target error) bool {
	_, ok := target.(*ErrUnknownCommand)
	return ok
}

type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Message
}

func (e *ErrValidation) Is(target error) bool {
	_, ok := target.(*ErrValidation)
	return ok
}

type ErrAuth struct {
	Message string
}

func (e *ErrAuth) Error() string {
	return e.Message
}

func (e *ErrAuth) Is(target error) bool {
	_, ok := target.(*ErrAuth)
	return ok
}

type ErrDateFormat struct {
	Value string
}

func (e *ErrDateFormat) Error() string {
	return "Date should be in this format: dd.MM.yyyy"
}

func (e *ErrDateFormat) Is(target error) bool {
	_, ok := target.(*ErrDateFormat)
	return ok
}

// Ошибки хранилища и инфраструктуры.

type ErrAccountNotFound struct {
	Username string
}

func (e *ErrAccountNotFound) Error() string {
	return "аккаунт не найден: " + e.Username
}

func (e *ErrAccountNotFound) Is(target error) bool {
	_, ok := target.(*ErrAccountNotFound)
	return ok
}

type ErrUsernameTaken struct {
	Username string
}

func (e *ErrUsernameTaken) Error() string {
	return "имя пользователя уже занято: " + e.Username
}

func (e *ErrUsernameTaken) Is(target error) bool {
	_, ok := target.(*ErrUsernameTaken)
	return ok
}

type ErrRateUnavailable struct {
	Currency string
}

func (e *ErrRateUnavailable) Error() string {
	return "курс недоступен для валюты: " + e.Currency
}

func (e *ErrRateUnavailable) Is(target error) bool {
	_, ok := target.(*ErrRateUnavailable)
	return ok
}

type ErrInvalidArgument struct {
	Message string
}

func (e *ErrInvalidArgument) Error() string {
	return fmt.Sprintf("некорректный аргумент: %s", e.Message)
}

type ErrUnknownDBAccessType struct {
	AccessType string
}

func (e *ErrUnknownDBAccessType) Error() string {
	return fmt.Sprintf("неизвестный тип доступа к базе данных: %s", e.AccessType)
}

type ErrUnknownUpdateMode struct {
	Mode string
}

func (e *ErrUnknownUpdateMode) Error() string {
	return fmt.Sprintf("неизвестный режим получения обновлений: %s", e.Mode)
}

type ErrBeginTransaction struct {
	Cause error
}

func (e *ErrBeginTransaction) Error() string {
	return fmt.Sprintf("ошибка при начале транзакции: %v", e.Cause)
}

func (e *ErrBeginTransaction) Unwrap() error {
	return e.Cause
}

type ErrBuildSQLQuery struct {
	Operation string
	Cause     error
}

func (e *ErrBuildSQLQuery) Error() string {
	return fmt.Sprintf("ошибка при построении SQL запроса для %s: %v", e.Operation, e.Cause)
}

func (e *ErrBuildSQLQuery) Unwrap() error {
	return e.Cause
}

type ErrSQLExecution struct {
	Operation string
	Cause     error
}

func (e *ErrSQLExecution) Error() string {
	return fmt.Sprintf("ошибка при выполнении SQL запроса для %s: %v", e.Operation, e.Cause)
}

func (e *ErrSQLExecution) Unwrap() error {
	return e.Cause
}

type ErrSQLScan struct {
	Entity string
	Cause  error
}

func (e *ErrSQLScan) Error() string {
	return fmt.Sprintf("ошибка при сканировании %s: %v", e.Entity, e.Cause)
}

func (e *ErrSQLScan) Unwrap() error {
	return e.Cause
}

type ErrCommitTransaction struct {
	Cause error
}

func (e *ErrCommitTransaction) Error() string {
	return fmt.Sprintf("ошибка при фиксации транзакции: %v", e.Cause)
}

func (e *ErrCommitTransaction) Unwrap() error {
	return e.Cause
}

const (
	OpCreateAccount      = "create_account"
	OpGetAccount         = "get_account"
	OpGetPreference      = "get_preference"
	OpUpdatePreference   = "update_preference"
	OpGetActiveSession   = "get_active_session"
	OpAppendSessionEvent = "append_session_event"
	OpListCurrencies     = "list_currencies"
	OpSaveConversion     = "save_conversion"
	OpFindConversions    = "find_conversions"
)

type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error: %d", e.StatusCode)
}
