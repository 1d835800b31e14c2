package health

type pingInput struct{}

type pingOutput struct {
	Body healthResponse
}

type healthResponse struct {
	Status  string `json:"status" example:"OK" doc:"Состояние сервиса"`
	Service string `json:"service" example:"lifesprint" doc:"Имя сервиса"`
}
