package components

import (
	"github.com/automoto/stompgrid/physics"
	"github.com/yohamta/donburi"
)

// Body is the kinematic box of any moving actor.
var Body = donburi.NewComponentType[physics.Body]()
