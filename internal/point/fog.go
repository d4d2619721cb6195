package point

// FogCircles returns one clearing per point with the configured radius.
// Pure; visibility state stays with the rendering side.
func FogCircles(points []Point, radiusM float64) []Circle {
	circles := make([]Circle, 0, len(points))
	for _, p := range points {
		circles = append(circles, Circle{
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
			RadiusM:   radiusM,
		})
	}
	return circles
}
