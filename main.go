package main

import (
	"care-pay/configuration"
	"care-pay/routes"
)

func Init() {
	configuration.ConfigDB()
	configuration.InitRedis()
}

func main() {
	//Perform application initialization
	Init()
	r := routes.UserRoutes()

	//Run the engine in default port
	if err := r.Run(); err != nil {
		panic(err)
	}

}
