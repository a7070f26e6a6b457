package repository

import (
	"errors"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "ordermgmt/internal/errors"
)

var mysqlKinds = map[uint16]apperrors.StorageKind{
	1062: apperrors.StorageUniqueViolation,
	1451: apperrors.StorageForeignKeyViolation,
	1452: apperrors.StorageForeignKeyViolation,
	1048: apperrors.StorageNotNullViolation,
	1364: apperrors.StorageNotNullViolation,
	1411: apperrors.StorageInvalidIdentifier,
}

var postgresKinds = map[string]apperrors.StorageKind{
	pgerrcode.UniqueViolation:           apperrors.StorageUniqueViolation,
	pgerrcode.ForeignKeyViolation:       apperrors.StorageForeignKeyViolation,
	pgerrcode.NotNullViolation:          apperrors.StorageNotNullViolation,
	pgerrcode.InvalidTextRepresentation: apperrors.StorageInvalidIdentifier,
}

// mysqlError tags a driver failure with its storage category.
func mysqlError(op string, err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return apperrors.NewStorageError(mysqlKinds[me.Number], strconv.Itoa(int(me.Number)), op, err)
	}
	return apperrors.NewStorageError(apperrors.StorageOther, "", op, err)
}

func postgresError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return apperrors.NewStorageError(postgresKinds[pgErr.Code], pgErr.Code, op, err)
	}
	return apperrors.NewStorageError(apperrors.StorageOther, "", op, err)
}
