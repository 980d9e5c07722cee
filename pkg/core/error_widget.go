package core

import (
	"sync"

	"github.com/go-drift/datatable/pkg/errors"
)

// ErrorWidgetBuilder returns the widget shown where a build panicked.
type ErrorWidgetBuilder func(err *errors.BoundaryError) Widget

var errorWidget struct {
	sync.RWMutex
	build ErrorWidgetBuilder
}

// SetErrorWidgetBuilder installs the fallback for failed builds. With no
// builder a failed build renders nothing.
func SetErrorWidgetBuilder(builder ErrorWidgetBuilder) {
	errorWidget.Lock()
	defer errorWidget.Unlock()
	errorWidget.build = builder
}

// GetErrorWidgetBuilder returns the installed fallback, or nil.
func GetErrorWidgetBuilder() ErrorWidgetBuilder {
	errorWidget.RLock()
	defer errorWidget.RUnlock()
	return errorWidget.build
}
