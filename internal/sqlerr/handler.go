package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/go-todos/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrCode reports the Code of the first *Error in err's chain, or Other.
func ErrCode(err error) Code {
	var pgerr *Error
	if errors.As(err, &pgerr) {
		return pgerr.Code
	}
	return Other
}

// ConvertPgError converts a raw *pgconn.PgError into an *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// violation describes how a client-caused database error is reported.
type violation struct {
	// action is the suffix of the error code, e.g. TODO_<action>.
	action   string
	override bool
	message  func(e *Error) string
	fields   func(e *Error) []errs.FieldError
}

var violations = map[Code]violation{
	ForeignKeyViolation: {
		action: "NOT_FOUND",
		message: func(e *Error) string {
			return fmt.Sprintf("The referenced %s does not exist", entityName(e.TableName, e.ColumnName))
		},
	},
	UniqueViolation: {
		action:   "ALREADY_EXISTS",
		override: true,
		message: func(e *Error) string {
			what := "identifier"
			if column := uniqueColumn(e.ConstraintName); column != "" {
				what = humanize(column)
			}
			return fmt.Sprintf("A %s with this %s already exists", entityName(e.TableName, e.ColumnName), what)
		},
	},
	NotNullViolation: {
		action:   "REQUIRED",
		override: true,
		message: func(e *Error) string {
			return fmt.Sprintf("The %s is required", orDefault(humanize(e.ColumnName), "field"))
		},
		fields: func(e *Error) []errs.FieldError {
			return []errs.FieldError{{Field: strings.ToLower(e.ColumnName), Error: "is required"}}
		},
	},
	CheckViolation: {
		action:   "INVALID",
		override: true,
		message: func(e *Error) string {
			if column := humanize(e.ColumnName); column != "" {
				return fmt.Sprintf("The %s value does not meet required conditions", column)
			}
			return "One or more values do not meet required conditions"
		},
	},
	InvalidText: {
		action:   "INVALID",
		override: true,
		message: func(*Error) string {
			return "One or more values have an invalid format"
		},
	},
}

// HandleError converts a low-level database error into an application-level error.
//
//   - *errs.HTTPError: returned unchanged
//   - *pgconn.PgError: client-caused violations become 400, anything else 500
//   - pgx.ErrNoRows / sql.ErrNoRows: 404, named after the table when known
//   - anything else: 500
//
// Driver details never reach the client.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fromPgError(ConvertPgError(pgErr))
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		var tableErr *TableError
		if errors.As(err, &tableErr) && tableErr.Table != "" {
			return errs.NewNotFoundError(entityName(tableErr.Table, "")+" not found", true, nil)
		}
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}

func fromPgError(e *Error) error {
	v, ok := violations[e.Code]
	if !ok {
		return errs.NewInternalServerError()
	}

	code := errorCode(e.TableName, v.action)

	var fields []errs.FieldError
	if v.fields != nil {
		fields = v.fields(e)
	}

	return errs.NewBadRequestError(v.message(e), v.override, &code, fields, nil)
}

// errorCode builds <ENTITY>_<ACTION>, e.g. todos + ALREADY_EXISTS gives
// TODO_ALREADY_EXISTS.
func errorCode(table, action string) string {
	return strings.ToUpper(singular(orDefault(table, "record"))) + "_" + action
}

// entityName prefers a "<entity>_id" column, then the singular table name.
func entityName(table, column string) string {
	column = strings.ToLower(column)
	if strings.HasSuffix(column, "_id") {
		return humanize(strings.TrimSuffix(column, "_id"))
	}
	if table != "" {
		return humanize(singular(table))
	}
	return "record"
}

func singular(name string) string {
	if len(name) > 1 && strings.HasSuffix(strings.ToLower(name), "s") {
		return name[:len(name)-1]
	}
	return name
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// humanize turns "first_name" into "First Name".
func humanize(s string) string {
	// A Caser keeps state, so each call gets its own.
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}

var uniqueKeyRe = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// uniqueColumn infers the column of a unique constraint named
// "unique_<table>_<column>" or "<table>_<column>_key".
func uniqueColumn(constraint string) string {
	if rest, ok := strings.CutPrefix(constraint, "unique_"); ok {
		if i := strings.LastIndex(rest, "_"); i >= 0 {
			return rest[i+1:]
		}
	}
	if m := uniqueKeyRe.FindStringSubmatch(constraint); m != nil {
		return m[1]
	}
	return ""
}
