package core

import (
	"encoding/json"
	"math"
)

// SensorData is the last sensor snapshot carried in the robot status.
// Distances are math.Inf(1) when nothing is in range.
type SensorData struct {
	ObstacleFront   bool    `json:"obstacle_front"`
	ObstacleLeft    bool    `json:"obstacle_left"`
	ObstacleRight   bool    `json:"obstacle_right"`
	ObstacleBack    bool    `json:"obstacle_back"`
	CliffDetected   bool    `json:"cliff_detected"`
	BumperTriggered bool    `json:"bumper_triggered"`
	DistanceFront   float64 `json:"distance_front"`
	DistanceLeft    float64 `json:"distance_left"`
	DistanceRight   float64 `json:"distance_right"`
	DistanceBack    float64 `json:"distance_back"`
}

// NewSensorData returns a snapshot with no detections.
func NewSensorData() SensorData {
	inf := math.Inf(1)
	return SensorData{
		DistanceFront: inf,
		DistanceLeft:  inf,
		DistanceRight: inf,
		DistanceBack:  inf,
	}
}

// MarshalJSON writes infinite distances as null since JSON has no infinity.
func (s SensorData) MarshalJSON() ([]byte, error) {
	type wire struct {
		ObstacleFront   bool     `json:"obstacle_front"`
		ObstacleLeft    bool     `json:"obstacle_left"`
		ObstacleRight   bool     `json:"obstacle_right"`
		ObstacleBack    bool     `json:"obstacle_back"`
		CliffDetected   bool     `json:"cliff_detected"`
		BumperTriggered bool     `json:"bumper_triggered"`
		DistanceFront   *float64 `json:"distance_front"`
		DistanceLeft    *float64 `json:"distance_left"`
		DistanceRight   *float64 `json:"distance_right"`
		DistanceBack    *float64 `json:"distance_back"`
	}
	return json.Marshal(wire{
		ObstacleFront:   s.ObstacleFront,
		ObstacleLeft:    s.ObstacleLeft,
		ObstacleRight:   s.ObstacleRight,
		ObstacleBack:    s.ObstacleBack,
		CliffDetected:   s.CliffDetected,
		BumperTriggered: s.BumperTriggered,
		DistanceFront:   finite(s.DistanceFront),
		DistanceLeft:    finite(s.DistanceLeft),
		DistanceRight:   finite(s.DistanceRight),
		DistanceBack:    finite(s.DistanceBack),
	})
}

func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
