package domain

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/validation"
)

// PortRange is an inclusive range of ports. A range whose Start is greater
// than its End is empty.
type PortRange struct {
	Start int32
	End   int32
}

// NewPortRange validates both endpoints as TCP/UDP port numbers.
func NewPortRange(start, end int) (PortRange, error) {
	for _, port := range []int{start, end} {
		if errs := validation.IsValidPortNum(port); len(errs) > 0 {
			return PortRange{}, fmt.Errorf("%w: %d: %s", ErrInvalidPortRange, port, strings.Join(errs, ", "))
		}
	}
	return PortRange{Start: int32(start), End: int32(end)}, nil
}

func (r PortRange) Len() int {
	if r.Start > r.End {
		return 0
	}
	return int(r.End-r.Start) + 1
}

// Ports returns every port in the range in ascending order.
func (r PortRange) Ports() []int32 {
	n := r.Len()
	ports := make([]int32, 0, n)
	for i := 0; i < n; i++ {
		ports = append(ports, r.Start+int32(i))
	}
	return ports
}

// Chunks splits the range into consecutive slices of at most size ports.
// A size of zero yields a single chunk holding the whole range.
func (r PortRange) Chunks(size int) ([][]int32, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChunkSize, size)
	}
	ports := r.Ports()
	if len(ports) == 0 {
		return nil, nil
	}
	if size == 0 {
		return [][]int32{ports}, nil
	}

	chunks := make([][]int32, 0, (len(ports)+size-1)/size)
	for start := 0; start < len(ports); start += size {
		end := min(start+size, len(ports))
		chunks = append(chunks, ports[start:end])
	}
	return chunks, nil
}

func (r PortRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}
