package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// Mock hospital directory feed for local development. Point HOSPITAL_BASE
// at http://localhost:8081 to use it instead of the embedded directory.
func main() {
	r := gin.Default()

	r.GET("/hospitals", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"hospitals": []gin.H{
			{
				"id":          101,
				"name":        "Riverside Community Hospital",
				"address":     "12 River Rd, Portland, OR 97201",
				"phone":       "(555) 201-3300",
				"specialties": []string{"General Practitioner", "Family Medicine", "Pediatrics"},
				"rating":      4.3,
				"distance":    1.2,
				"coordinates": gin.H{"lat": 45.5152, "lng": -122.6784},
			},
			{
				"id":          102,
				"name":        "Hillcrest Neurology Clinic",
				"address":     "80 Summit Ave, Portland, OR 97205",
				"phone":       "(555) 201-4410",
				"specialties": []string{"Neurology", "Neurologist"},
				"rating":      4.6,
				"distance":    2.8,
				"coordinates": gin.H{"lat": 45.5231, "lng": -122.6996},
			},
			{
				"id":          103,
				"name":        "Eastside Digestive Health",
				"address":     "455 Burnside St, Portland, OR 97214",
				"phone":       "(555) 201-5520",
				"specialties": []string{"Gastroenterology", "Gastroenterologist"},
				"rating":      4.1,
				"distance":    3.5,
				"coordinates": gin.H{"lat": 45.5229, "lng": -122.6540},
			},
		}})
	})

	addr := ":8081"
	if p := os.Getenv("MOCK_HOSPITAL_PORT"); p != "" {
		addr = ":" + p
	}
	log.Printf("Mock hospital directory running on http://localhost%s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
