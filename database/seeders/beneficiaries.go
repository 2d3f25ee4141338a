package seeders

import (
	"log"

	beneficiaryModel "care-connect/models/beneficiary"

	"gorm.io/gorm"
)

// SeedBeneficiaries loads the default needy-person reference data when the
// table is empty.
func SeedBeneficiaries(db *gorm.DB) {
	var count int64
	if err := db.Model(&beneficiaryModel.Beneficiary{}).Count(&count).Error; err != nil {
		log.Printf("Failed to check beneficiaries table: %v", err)
		return
	}
	if count > 0 {
		return
	}

	people := []beneficiaryModel.Beneficiary{
		{NeedyID: "N001", Name: "Ramesh Patil", Area: "Nagpur", Category: "Food"},
		{NeedyID: "N002", Name: "Sunita Kale", Area: "Pune", Category: "Clothes"},
		{NeedyID: "N003", Name: "Mohan Deshmukh", Area: "Mumbai", Category: "Education"},
		{NeedyID: "N004", Name: "Asha Jadhav", Area: "Nashik", Category: "Medical"},
		{NeedyID: "N005", Name: "Ravi More", Area: "Aurangabad", Category: "Daily Essentials"},
		{NeedyID: "N006", Name: "Pooja Shinde", Area: "Kolhapur", Category: "Food"},
		{NeedyID: "N007", Name: "Suresh Pawar", Area: "Solapur", Category: "Clothes"},
		{NeedyID: "N008", Name: "Kavita Thakur", Area: "Thane", Category: "Education"},
		{NeedyID: "N009", Name: "Anil Pawar", Area: "Amravati", Category: "Medical"},
		{NeedyID: "N010", Name: "Neha Kulkarni", Area: "Satara", Category: "Daily Essentials"},
	}

	if err := db.Create(&people).Error; err != nil {
		log.Printf("Failed to seed beneficiaries: %v", err)
		return
	}
	log.Printf("Seeded %d beneficiary records", len(people))
}
