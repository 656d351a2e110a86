// Package notify shows replies as freedesktop desktop notifications over
// the D-Bus session bus.
package notify

import (
	"fmt"
	"path/filepath"

	"github.com/godbus/dbus/v5"

	"github.com/mpdkeys/mpdkeys/client"
	"github.com/mpdkeys/mpdkeys/client/mpd"
)

const (
	AppName = "mpdkeys"

	busName    = "org.freedesktop.Notifications"
	objectPath = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyCall = busName + ".Notify"
)

// Urgency levels from the notification spec.
const (
	UrgencyLow      byte = 0
	UrgencyNormal   byte = 1
	UrgencyCritical byte = 2
)

// Icon returns the icon file shown for the result of action.
func Icon(dir string, action client.Action, state mpd.State) string {
	var name string
	switch action {
	case client.ActionNext:
		name = "media-skip-forward-symbolic.svg"
	case client.ActionPrev:
		name = "media-skip-backward-symbolic.svg"
	case client.ActionStop:
		name = "media-playback-stop.svg"
	default:
		switch state {
		case mpd.Playing:
			name = "media-playback-start-symbolic.svg"
		case mpd.Paused:
			name = "media-playback-pause-symbolic.svg"
		default:
			name = "media-playback-stop.svg"
		}
	}
	return filepath.Join(dir, name)
}

// IDStore keeps the id of the last notification shown, so the next one
// replaces it instead of stacking up.
type IDStore interface {
	NotificationID() (uint32, error)
	SetNotificationID(id uint32) error
}

// caller is the part of dbus.BusObject used here.
type caller interface {
	Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

type Notifier struct {
	obj     caller
	ids     IDStore
	Timeout int32 // ms, -1 for the server default
}

// Connect opens the session bus.
func Connect(ids IDStore) (*Notifier, func() error, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to session bus: %w", err)
	}
	return New(conn.Object(busName, objectPath), ids), conn.Close, nil
}

func New(obj caller, ids IDStore) *Notifier {
	return &Notifier{obj: obj, ids: ids, Timeout: -1}
}

// Notify shows reply with the given icon, replacing the previous
// notification when its id is known.
func (n *Notifier) Notify(reply client.Reply, icon string) (uint32, error) {
	var replaces uint32
	if n.ids != nil {
		// An unreadable id only costs an extra bubble.
		replaces, _ = n.ids.NotificationID()
	}

	urgency := UrgencyNormal
	if reply.Failed {
		urgency = UrgencyCritical
	}
	hints := map[string]dbus.Variant{
		"category": dbus.MakeVariant("mpd"),
		"urgency":  dbus.MakeVariant(urgency),
	}

	var id uint32
	err := n.obj.Call(notifyCall, 0,
		AppName, replaces, icon, reply.Text, "", []string{}, hints, n.Timeout,
	).Store(&id)
	if err != nil {
		return 0, fmt.Errorf("sending notification: %w", err)
	}

	if n.ids != nil {
		if err := n.ids.SetNotificationID(id); err != nil {
			return id, fmt.Errorf("saving notification id: %w", err)
		}
	}
	return id, nil
}
