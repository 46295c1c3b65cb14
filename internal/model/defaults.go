package model

import "time"

// Shared defaults used by the TUI and the CLI subcommands.
const (
	DefaultStartPath        = "/dashboard/admin/"
	DefaultOrigin           = "local"
	DefaultStoreBackend     = "duckdb"
	DefaultSelection        = "all"
	DefaultMobileBreakpoint = 80
	DefaultClockInterval    = time.Second
)

// Fixed store keys, mirroring the browser's localStorage names.
const (
	KeyActiveMenu   = "activeMenu"
	KeySidebarState = "sidebarState"
)

// Values stored under KeySidebarState.
const (
	SidebarCollapsed = "collapsed"
	SidebarExpanded  = "expanded"
)
