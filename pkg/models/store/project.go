package store

import "time"

type CustomerRecord struct {
	ID            int64  `yaml:"id"`
	Name          string `yaml:"name"`
	ContactPerson string `yaml:"contact_person"`
	Email         string `yaml:"email"`
	Phone         string `yaml:"phone"`
	Industry      string `yaml:"industry"`
	Address       string `yaml:"address"`
}

type ProjectRecord struct {
	ID           int64     `yaml:"id"`
	Name         string    `yaml:"name"`
	CustomerID   int64     `yaml:"customer_id"`
	CustomerName string    `yaml:"-"`
	Status       string    `yaml:"status"`
	Progress     float64   `yaml:"progress"`
	RevenueCents int64     `yaml:"revenue_cents"`
	Location     string    `yaml:"location"`
	StartDate    time.Time `yaml:"start_date"`
	DueDate      time.Time `yaml:"due_date"`
}

type PerformanceRecord struct {
	Location      string  `yaml:"location"`
	Efficiency    float64 `yaml:"efficiency"`
	ProductionKWh int64   `yaml:"production_kwh"`
	Status        string  `yaml:"status"`
}

// ProjectStats is the aggregate row behind the dashboard summary.
type ProjectStats struct {
	TotalProjects     int64
	ActiveProjects    int64
	TotalRevenueCents int64
	AverageProgress   float64
}
