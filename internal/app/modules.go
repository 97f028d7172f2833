package app

import (
	"github.com/vk/scriptbasic/internal/registry"
	"github.com/vk/scriptbasic/modules/assign"
	"github.com/vk/scriptbasic/modules/console"
	"github.com/vk/scriptbasic/modules/evalexpr"
	"github.com/vk/scriptbasic/modules/events"
	"github.com/vk/scriptbasic/modules/mathx"
	"github.com/vk/scriptbasic/modules/socketio"
	"github.com/vk/scriptbasic/modules/timing"
)

// coreModules is the definitive list of action modules compiled into the
// binary.
var coreModules = []registry.Module{
	&assign.Module{},
	&console.Module{},
	&evalexpr.Module{},
	&events.Module{},
	&mathx.Module{},
	&socketio.Module{},
	&timing.Module{},
}
