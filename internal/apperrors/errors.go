package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrAlreadyApproved indicates that approve was called on a workday whose approval flag is already set.
var ErrAlreadyApproved = errors.New("workday already approved")

// ErrAlreadyClosed indicates that checkout was called on a workday that already has a checkout time.
var ErrAlreadyClosed = errors.New("workday already checked out")

// ErrForbidden indicates the caller is authenticated but not allowed to act on the resource.
var ErrForbidden = errors.New("operation not permitted")

// ErrUnauthenticated indicates that no caller identity was available where one is required.
var ErrUnauthenticated = errors.New("caller not authenticated")
