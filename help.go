package main

import (
	"fmt"

	"srcon-go/rcon"
)

var longHelp = fmt.Sprintf(`Send rcon commands to a Source RCON game server.

Server address, port and password can be set with following environment variables:
  SRCON_HOST
  SRCON_PORT
  SRCON_PASS
  SRCON_TIMEOUT

- %[1]s will start in terminal mode if no commands are given
- Command-line options will override environment variables
- Rcon commands with spaces must be enclosed in quotes
- Wait (-w) accepts 1-%[2]d seconds between each command

Example:
	%[1]s -H my.game.server -P 27020 -p password -w 5 "broadcast Restarting" saveworld`,
	rcon.AppName, rcon.MaxWaitTime)
