package model

// VehicleSnapshot is a plain-struct Vehicle implementation. The CLI and
// tests use it to describe fleet state without a running engine.
type VehicleSnapshot struct {
	VehicleID int       `json:"id"`
	Floor     int       `json:"floor"`
	Pos       float64   `json:"position"`
	Dir       Direction `json:"direction"`
	Target    *int      `json:"target,omitempty"`
	Riders    []int     `json:"riders"`
	Cap       int       `json:"capacity"`
}

func (v *VehicleSnapshot) ID() int              { return v.VehicleID }
func (v *VehicleSnapshot) CurrentFloor() int    { return v.Floor }
func (v *VehicleSnapshot) Position() float64    { return v.Pos }
func (v *VehicleSnapshot) Direction() Direction { return v.Dir }
func (v *VehicleSnapshot) Occupants() []int     { return v.Riders }
func (v *VehicleSnapshot) Capacity() int        { return v.Cap }

func (v *VehicleSnapshot) TargetFloor() (int, bool) {
	if v.Target == nil {
		return 0, false
	}
	return *v.Target, true
}

// FloorSnapshot is a plain-struct Floor implementation.
type FloorSnapshot struct {
	Idx  int   `json:"floor"`
	Up   []int `json:"up_waiting"`
	Down []int `json:"down_waiting"`
}

func (f *FloorSnapshot) Index() int         { return f.Idx }
func (f *FloorSnapshot) UpWaiting() []int   { return f.Up }
func (f *FloorSnapshot) DownWaiting() []int { return f.Down }

// PassengerSnapshot is a plain-struct Passenger implementation.
type PassengerSnapshot struct {
	PassengerID int `json:"id"`
	From        int `json:"origin"`
	To          int `json:"destination"`
}

func (p *PassengerSnapshot) ID() int          { return p.PassengerID }
func (p *PassengerSnapshot) Origin() int      { return p.From }
func (p *PassengerSnapshot) Destination() int { return p.To }
