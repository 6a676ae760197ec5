package perifa

import "github.com/perifanotoque/perifa/pkg/perifa/icons"

// MessageType selects the styling and icon of a toast, modal or alert.
type MessageType = icons.Kind

const (
	TypeInfo    = icons.KindInfo
	TypeSuccess = icons.KindSuccess
	TypeError   = icons.KindError
	TypeWarning = icons.KindWarning
	TypeConfirm = icons.KindConfirm
)

// ToastPosition is the screen corner or edge a toast container sticks to.
type ToastPosition int

const (
	ToastPositionCurrent ToastPosition = iota // Keep the container where it is
	ToastTopRight                             // Default
	ToastTopLeft
	ToastTopCenter
	ToastBottomLeft
	ToastBottomRight
	ToastBottomCenter
)

var toastPositionNames = map[ToastPosition]string{
	ToastTopRight:     "top-right",
	ToastTopLeft:      "top-left",
	ToastTopCenter:    "top-center",
	ToastBottomLeft:   "bottom-left",
	ToastBottomRight:  "bottom-right",
	ToastBottomCenter: "bottom-center",
}

func (p ToastPosition) String() string {
	if name, ok := toastPositionNames[p]; ok {
		return name
	}
	return "top-right"
}

// ParseToastPosition maps a name such as "bottom-center" to a position.
// Unknown names fall back to top-right.
func ParseToastPosition(name string) ToastPosition {
	for p, n := range toastPositionNames {
		if n == name {
			return p
		}
	}
	return ToastTopRight
}

// AlertPosition is where the floating alert container sits.
type AlertPosition int

const (
	AlertPositionCurrent AlertPosition = iota // Keep the container where it is
	AlertTopRight                             // Default
	AlertBottomRight
	AlertCenter
)

func (p AlertPosition) containerClass() string {
	switch p {
	case AlertBottomRight:
		return "alert-container-bottom"
	case AlertCenter:
		return "alert-container-center"
	default:
		return "alert-container"
	}
}

// ModalAction is the role of a modal button.
type ModalAction int

const (
	ModalActionConfirm ModalAction = iota // Runs OnConfirm
	ModalActionCancel                     // Runs OnCancel
	ModalActionDismiss                    // Closes without a callback
)

func (a ModalAction) String() string {
	switch a {
	case ModalActionConfirm:
		return "confirm"
	case ModalActionCancel:
		return "cancel"
	default:
		return "dismiss"
	}
}

// Size scales a toast, modal or alert.
type Size int

const (
	SizeNormal Size = iota
	SizeSmall
	SizeMedium
	SizeLarge
)

func (s Size) String() string {
	switch s {
	case SizeSmall:
		return "small"
	case SizeMedium:
		return "medium"
	case SizeLarge:
		return "large"
	default:
		return "normal"
	}
}
