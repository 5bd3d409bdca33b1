package screens

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// AppExiter is implemented by the host application.
// Screens can call Exit to request termination.
type AppExiter interface {
	Exit(err error)
}
