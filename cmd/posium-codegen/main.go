package main

import (
	"github.com/posiumhq/posium-codegen/internal/bootstrap"
)

func main() {
	bootstrap.NewApp().Run()
}
