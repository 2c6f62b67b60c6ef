package catalog

var indianSites = []Site{
	{
		ID: "1", Name: "Chennai Solar Hub", Position: [2]float64{13.0827, 80.2707},
		Irradiance: 875, Efficiency: 88.3, Capacity: 180, Status: StatusActive,
		Region: RegionCoastal, State: "Tamil Nadu", Climate: "Tropical", PeakSunHours: 5.8,
		BestMonths: []string{"Feb", "Mar", "Apr", "Nov", "Dec"},
	},
	{
		ID: "2", Name: "Siliguri Mountain Station", Position: [2]float64{26.7271, 88.3953},
		Irradiance: 820, Efficiency: 86.2, Capacity: 95, Status: StatusActive,
		Region: RegionHill, State: "West Bengal", Climate: "Subtropical Highland", PeakSunHours: 4.9,
		BestMonths: []string{"Oct", "Nov", "Dec", "Jan", "Feb"},
	},
	{
		ID: "3", Name: "Kerala Coastal Array", Position: [2]float64{10.8505, 76.2711},
		Irradiance: 795, Efficiency: 84.7, Capacity: 140, Status: StatusActive,
		Region: RegionCoastal, State: "Kerala", Climate: "Tropical Monsoon", PeakSunHours: 5.2,
		BestMonths: []string{"Dec", "Jan", "Feb", "Mar"},
	},
	{
		ID: "4", Name: "Delhi NCR Solar Park", Position: [2]float64{28.6139, 77.2090},
		Irradiance: 865, Efficiency: 87.9, Capacity: 220, Status: StatusActive,
		Region: RegionCity, State: "Delhi", Climate: "Semi-arid", PeakSunHours: 6.1,
		BestMonths: []string{"Feb", "Mar", "Apr", "Oct", "Nov"},
	},
	{
		ID: "5", Name: "Rajasthan Desert Mega Plant", Position: [2]float64{27.0238, 74.2179},
		Irradiance: 965, Efficiency: 91.4, Capacity: 350, Status: StatusActive,
		Region: RegionDesert, State: "Rajasthan", Climate: "Hot Desert", PeakSunHours: 7.2,
		BestMonths: []string{"Oct", "Nov", "Dec", "Jan", "Feb", "Mar"},
	},
	{
		ID: "6", Name: "Mumbai Industrial Solar", Position: [2]float64{19.0760, 72.8777},
		Irradiance: 785, Efficiency: 83.1, Capacity: 190, Status: StatusMaintenance,
		Region: RegionCoastal, State: "Maharashtra", Climate: "Tropical", PeakSunHours: 5.4,
		BestMonths: []string{"Nov", "Dec", "Jan", "Feb", "Mar"},
	},
	{
		ID: "7", Name: "Bangalore Tech Park Solar", Position: [2]float64{12.9716, 77.5946},
		Irradiance: 835, Efficiency: 87.6, Capacity: 160, Status: StatusActive,
		Region: RegionCity, State: "Karnataka", Climate: "Tropical Savanna", PeakSunHours: 5.7,
		BestMonths: []string{"Jan", "Feb", "Mar", "Nov", "Dec"},
	},
	{
		ID: "8", Name: "Leh Ladakh High Altitude", Position: [2]float64{34.1526, 77.5771},
		Irradiance: 940, Efficiency: 93.2, Capacity: 85, Status: StatusActive,
		Region: RegionHill, State: "Ladakh", Climate: "Cold Desert", PeakSunHours: 6.8,
		BestMonths: []string{"May", "Jun", "Jul", "Aug", "Sep"},
	},
	{
		ID: "9", Name: "Gujarat Coastal Wind-Solar", Position: [2]float64{22.2587, 71.1924},
		Irradiance: 905, Efficiency: 89.7, Capacity: 280, Status: StatusActive,
		Region: RegionCoastal, State: "Gujarat", Climate: "Semi-arid", PeakSunHours: 6.5,
		BestMonths: []string{"Oct", "Nov", "Dec", "Jan", "Feb", "Mar", "Apr"},
	},
	{
		ID: "10", Name: "Hyderabad IT Corridor Solar", Position: [2]float64{17.3850, 78.4867},
		Irradiance: 850, Efficiency: 88.1, Capacity: 175, Status: StatusActive,
		Region: RegionCity, State: "Telangana", Climate: "Semi-arid", PeakSunHours: 5.9,
		BestMonths: []string{"Nov", "Dec", "Jan", "Feb", "Mar"},
	},
}
