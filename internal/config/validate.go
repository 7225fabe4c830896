package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate reports the first inconsistency in the configuration.
func (c FlappyConfig) Validate() error {
	switch {
	case c.Physics.Gravity <= 0:
		return fmt.Errorf("%w: physics.gravity must be positive, got %v", ErrInvalid, c.Physics.Gravity)
	case c.Physics.InitialRiseSpeed <= 0:
		return fmt.Errorf("%w: physics.initial_rise_speed must be positive, got %v", ErrInvalid, c.Physics.InitialRiseSpeed)
	case c.Stream.Speed >= 0:
		return fmt.Errorf("%w: stream.speed must be negative (leftward), got %v", ErrInvalid, c.Stream.Speed)
	case c.Stream.Spacing <= 0:
		return fmt.Errorf("%w: stream.spacing must be positive, got %v", ErrInvalid, c.Stream.Spacing)
	case c.Stream.Spacing < c.Obstacles.Width:
		return fmt.Errorf("%w: stream.spacing %v is narrower than obstacles.width %v", ErrInvalid, c.Stream.Spacing, c.Obstacles.Width)
	case c.Stream.SpawnX <= c.Stream.DespawnX:
		return fmt.Errorf("%w: stream.spawn_x must lie right of stream.despawn_x", ErrInvalid)
	case c.Obstacles.Width <= 0:
		return fmt.Errorf("%w: obstacles.width must be positive, got %v", ErrInvalid, c.Obstacles.Width)
	case c.Obstacles.MinGap <= 0 || c.Obstacles.MaxGap < c.Obstacles.MinGap:
		return fmt.Errorf("%w: obstacles gap range [%v, %v] is empty", ErrInvalid, c.Obstacles.MinGap, c.Obstacles.MaxGap)
	case c.Obstacles.Margin < 0:
		return fmt.Errorf("%w: obstacles.margin must not be negative", ErrInvalid)
	case c.Actor.Width <= 0 || c.Actor.Height <= 0:
		return fmt.Errorf("%w: actor hitbox must have positive size", ErrInvalid)
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("%w: world must have positive size", ErrInvalid)
	case c.World.GroundHeight < 0 || c.World.GroundHeight >= c.World.Height:
		return fmt.Errorf("%w: world.ground_height must lie within the world", ErrInvalid)
	case c.World.GroundHeight+2*c.Obstacles.Margin+c.Obstacles.MaxGap > c.World.Height:
		return fmt.Errorf("%w: obstacles do not fit between ground and ceiling", ErrInvalid)
	case c.Effects.DropSoundDelay < 0:
		return fmt.Errorf("%w: effects.drop_sound_delay must not be negative", ErrInvalid)
	case c.Medals.Gold < c.Medals.Silver:
		return fmt.Errorf("%w: medals.gold must not be below medals.silver", ErrInvalid)
	}
	return nil
}
