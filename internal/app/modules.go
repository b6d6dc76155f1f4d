package app

import (
	"github.com/vk/prismc/internal/registry"
	"github.com/vk/prismc/modules/passthrough"
	"github.com/vk/prismc/modules/stripper"
)

// coreModules are the compiler front ends registered by default when the
// caller supplies none.
var coreModules = []registry.Module{
	&passthrough.Module{},
	&stripper.Module{},
}
