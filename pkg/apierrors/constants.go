package apierrors

const (
	MsgFailListTask        = "errorListTask"
	MsgInvalidTaskID       = "invalidTaskID"
	MsgInvalidTaskPayload  = "invalidTaskPayload"
	MsgTaskNotFound        = "taskNotFound"
	MsgFailGetTask         = "failGetTask"
	MsgFailCreateTask      = "failCreateTask"
	MsgFailUpdateTask      = "failUpdateTask"
	MsgFailDeleteTask      = "failDeleteTask"
	MsgFailStats           = "failStats"
	MsgConstraintViolation = "constraintViolation"
	MsgStoreUnavailable    = "storeUnavailable"
	MsgTaskDeleted         = "taskDeleted"
)
