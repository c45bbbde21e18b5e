package booking

import (
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
)

// DBExecutor *sql.DB, *dbmetrics.DB или транзакция
type DBExecutor = dbmetrics.DBExecutor
