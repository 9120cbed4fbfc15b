// Package notification holds the notification sub-configuration: which
// desktop backend reports results and which images it shows. Backends are
// only named here; delivering notifications is left to the runner.
package notification

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnsupportedFramework is returned for backends the runner does not ship.
var ErrUnsupportedFramework = errors.New("notification framework not supported")

const (
	Growl     = "growl"
	LibNotify = "lib_notify"
)

// notifiers maps each supported framework to the executable that drives it.
var notifiers = map[string]string{
	Growl:     "growlnotify",
	LibNotify: "notify-send",
}

// Supported lists the framework names New accepts, sorted.
func Supported() []string {
	names := make([]string, 0, len(notifiers))
	for name := range notifiers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Notification is scoped to a single framework.
type Notification struct {
	framework    string
	successImage string
	pendingImage string
	failureImage string
}

// New returns a Notification for framework. The empty framework yields the
// unscoped default that has no notifier.
func New(framework string) (*Notification, error) {
	if framework != "" {
		if _, ok := notifiers[framework]; !ok {
			return nil, fmt.Errorf("%w: %q (supported: %v)", ErrUnsupportedFramework, framework, Supported())
		}
	}
	return &Notification{framework: framework}, nil
}

// Framework is the backend name, empty for the default notification.
func (n *Notification) Framework() string { return n.framework }

// Notifier is the executable of the backend, empty for the default.
func (n *Notification) Notifier() string { return notifiers[n.framework] }

func (n *Notification) SuccessImage() string { return n.successImage }
func (n *Notification) PendingImage() string { return n.pendingImage }
func (n *Notification) FailureImage() string { return n.failureImage }

func (n *Notification) SetSuccessImage(path string) *Notification {
	n.successImage = path
	return n
}

func (n *Notification) SetPendingImage(path string) *Notification {
	n.pendingImage = path
	return n
}

func (n *Notification) SetFailureImage(path string) *Notification {
	n.failureImage = path
	return n
}
