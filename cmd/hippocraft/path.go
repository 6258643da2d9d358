package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// parsePath reads "x,z;x,z" into reference positions at y = 0.
func parsePath(s string) ([]mgl32.Vec3, error) {
	var points []mgl32.Vec3
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		xs, zs, ok := strings.Cut(part, ",")
		if !ok {
			return nil, fmt.Errorf("path point %q: want x,z", part)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xs), 32)
		if err != nil {
			return nil, fmt.Errorf("path point %q: %w", part, err)
		}
		z, err := strconv.ParseFloat(strings.TrimSpace(zs), 32)
		if err != nil {
			return nil, fmt.Errorf("path point %q: %w", part, err)
		}
		points = append(points, mgl32.Vec3{float32(x), 0, float32(z)})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("path %q has no points", s)
	}
	return points, nil
}
