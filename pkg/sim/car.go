package sim

import (
	"github.com/cfoust/acp/pkg/vehicle"

	"github.com/go-gl/mathgl/mgl64"
)

type WheelSpec struct {
	Name   string
	Mount  mgl64.Vec3
	Radius float64
	Steer  bool
	Drive  bool
	Active bool
}

// DefaultLayout is a front-steer, rear-drive car with a 2.6m wheelbase.
func DefaultLayout() []WheelSpec {
	return []WheelSpec{
		{Name: "front-left", Mount: mgl64.Vec3{-0.8, 0, 1.3}, Radius: DefaultWheelRadius, Steer: true, Active: true},
		{Name: "front-right", Mount: mgl64.Vec3{0.8, 0, 1.3}, Radius: DefaultWheelRadius, Steer: true, Active: true},
		{Name: "rear-left", Mount: mgl64.Vec3{-0.8, 0, -1.3}, Radius: DefaultWheelRadius, Drive: true, Active: true},
		{Name: "rear-right", Mount: mgl64.Vec3{0.8, 0, -1.3}, Radius: DefaultWheelRadius, Drive: true, Active: true},
	}
}

// Car is a body with its wheels, bound the way a vehicle controller expects.
type Car struct {
	Body     *Body
	Wheels   map[string]*Wheel
	Bindings vehicle.Wheels
}

// NewCar builds a body with the given wheels and adds it to the world. The
// body is settled onto the ground before it is returned, so the pose it
// reports is the one a controller will capture as its spawn pose.
func NewCar(world *World, mass float64, spawn vehicle.Pose, specs []WheelSpec) *Car {
	car := &Car{
		Body:   NewBody(mass, spawn),
		Wheels: make(map[string]*Wheel, len(specs)),
	}

	for _, spec := range specs {
		radius := spec.Radius
		if radius <= 0 {
			radius = DefaultWheelRadius
		}

		wheel := NewWheel(car.Body, spec.Mount, radius)
		wheel.SetActive(spec.Active)
		car.Wheels[spec.Name] = wheel

		car.Bindings.All = append(car.Bindings.All, wheel)
		if spec.Steer {
			car.Bindings.Steer = append(car.Bindings.Steer, wheel)
		}
		if spec.Drive {
			car.Bindings.Drive = append(car.Bindings.Drive, wheel)
		}
	}

	world.AddBody(car.Body)
	return car
}
