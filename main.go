package main

import (
	"github.com/Electron-Labs/quantum-proof-schemes/cmd"
	_ "github.com/Electron-Labs/quantum-proof-schemes/cmd/prove"
	_ "github.com/Electron-Labs/quantum-proof-schemes/cmd/setup"
	_ "github.com/Electron-Labs/quantum-proof-schemes/cmd/verify"
)

func main() {
	cmd.Execute()
}
