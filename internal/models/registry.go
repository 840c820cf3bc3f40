package models

// ModelRegistry is the set of models handled by --auto-migrate.
var ModelRegistry = []interface{}{
	&WaitlistEntry{},
	&DailyVisit{},
}
