package domain

import (
	"fmt"
	"strings"

	corev1 "k8s.io/api/core/v1"
)

// ProtocolSelection is the protocol argument accepted on the command line.
type ProtocolSelection string

const (
	SelectionTCP  ProtocolSelection = "TCP"
	SelectionUDP  ProtocolSelection = "UDP"
	SelectionBoth ProtocolSelection = "both"
)

// ProtocolChoices lists the accepted selections in the order they are offered for completion.
var ProtocolChoices = []ProtocolSelection{SelectionTCP, SelectionUDP, SelectionBoth}

// ParseProtocolSelection matches value case-insensitively against ProtocolChoices.
func ParseProtocolSelection(value string) (ProtocolSelection, error) {
	for _, choice := range ProtocolChoices {
		if strings.EqualFold(value, string(choice)) {
			return choice, nil
		}
	}
	return "", fmt.Errorf("%w: %q (choose from TCP, UDP, both)", ErrInvalidProtocol, value)
}

// Protocols expands the selection into the ordered list of protocols to fill.
// TCP always comes before UDP.
func (s ProtocolSelection) Protocols() []corev1.Protocol {
	switch s {
	case SelectionTCP:
		return []corev1.Protocol{corev1.ProtocolTCP}
	case SelectionUDP:
		return []corev1.Protocol{corev1.ProtocolUDP}
	case SelectionBoth:
		return []corev1.Protocol{corev1.ProtocolTCP, corev1.ProtocolUDP}
	default:
		return nil
	}
}

func (s ProtocolSelection) IncludesUDP() bool {
	return s == SelectionUDP || s == SelectionBoth
}
