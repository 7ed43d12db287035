package project

import "strings"

// CameraAngle is the framing requested for a shot.
type CameraAngle string

const (
	AngleWide         CameraAngle = "Wide"
	AngleMedium       CameraAngle = "Medium"
	AngleCloseUp      CameraAngle = "Close-up"
	AngleOverShoulder CameraAngle = "Over-the-shoulder"
)

// Angles lists every camera angle in selector order.
var Angles = []CameraAngle{AngleWide, AngleMedium, AngleCloseUp, AngleOverShoulder}

// ParseAngle maps free-form model output onto a known angle.
// Anything unrecognised becomes AngleMedium.
func ParseAngle(s string) CameraAngle {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer(" ", "-", "_", "-").Replace(normalized)
	switch normalized {
	case "wide", "wide-shot", "establishing":
		return AngleWide
	case "medium", "medium-shot", "mid":
		return AngleMedium
	case "close-up", "closeup", "close":
		return AngleCloseUp
	case "over-the-shoulder", "ots", "over-shoulder":
		return AngleOverShoulder
	default:
		return AngleMedium
	}
}

func (a CameraAngle) index() int {
	for i, angle := range Angles {
		if angle == a {
			return i
		}
	}
	return 1
}

// Next returns the following angle, wrapping around.
func (a CameraAngle) Next() CameraAngle {
	return Angles[(a.index()+1)%len(Angles)]
}

// Prev returns the preceding angle, wrapping around.
func (a CameraAngle) Prev() CameraAngle {
	return Angles[(a.index()+len(Angles)-1)%len(Angles)]
}

func (a CameraAngle) String() string {
	return string(a)
}
