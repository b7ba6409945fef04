package main

// 目录种子数据：分类与各分类下的药品

type seedCategory struct {
	Name, Description, Image string
}

type seedMedicine struct {
	Name, ActiveIngredient, Dosage string
	Price, OriginalPrice          float64
	Prescription                  bool
	Description                   string
}

var seedCategories = []seedCategory{
	{"Heart Care", "Cardiovascular medicines and supplements for heart health", "heart-care.jpg"},
	{"Brain & Mental Health", "Neurological and mental health medications", "brain-health.jpg"},
	{"Eye Care", "Ophthalmic medicines and eye drops", "eye-care.jpg"},
	{"Family Care", "Healthcare products for the entire family", "family-care.jpg"},
	{"Wellness", "Vitamins, supplements and wellness products", "wellness.jpg"},
	{"General Medicine", "Common medications and treatments", "general-medicine.jpg"},
	{"Pain Relief", "Pain management and relief medications", "pain-relief.jpg"},
	{"Diabetes Care", "Diabetes management and monitoring products", "diabetes-care.jpg"},
}

// seedMedicines 以分类名为键
var seedMedicines = map[string][]seedMedicine{
	"Heart Care": {
		{"Atorvastatin 20mg", "Atorvastatin", "20mg", 45.99, 52.99, true, "Cholesterol-lowering medication for heart health"},
		{"Lisinopril 10mg", "Lisinopril", "10mg", 18.99, 22.99, true, "ACE inhibitor for blood pressure management"},
		{"Metoprolol 50mg", "Metoprolol", "50mg", 28.50, 32.99, true, "Beta-blocker for heart rate control"},
		{"Aspirin 81mg", "Aspirin", "81mg", 8.99, 12.99, false, "Low-dose aspirin for heart protection"},
		{"Clopidogrel 75mg", "Clopidogrel", "75mg", 65.99, 78.99, true, "Blood thinner to prevent clots"},
		{"Amlodipine 5mg", "Amlodipine", "5mg", 22.99, 27.99, true, "Calcium channel blocker for blood pressure"},
		{"Rosuvastatin 10mg", "Rosuvastatin", "10mg", 42.99, 49.99, true, "High-intensity statin for cholesterol"},
		{"Losartan 50mg", "Losartan", "50mg", 35.99, 41.99, true, "ARB for blood pressure management"},
		{"Digoxin 0.25mg", "Digoxin", "0.25mg", 19.99, 24.99, true, "Heart rhythm medication"},
		{"Warfarin 5mg", "Warfarin", "5mg", 15.99, 19.99, true, "Anticoagulant for blood clot prevention"},
		{"CoQ10 100mg", "Coenzyme Q10", "100mg", 24.99, 29.99, false, "Heart health supplement"},
		{"Omega-3 Fish Oil", "EPA/DHA", "1000mg", 34.99, 39.99, false, "Supports heart and brain health"},
		{"Diltiazem 120mg", "Diltiazem", "120mg", 38.99, 44.99, true, "Calcium channel blocker for angina"},
		{"Furosemide 40mg", "Furosemide", "40mg", 12.99, 16.99, true, "Diuretic for fluid retention"},
		{"Carvedilol 25mg", "Carvedilol", "25mg", 31.99, 37.99, true, "Beta-blocker for heart failure"},
	},
	"Pain Relief": {
		{"Paracetamol 500mg", "Paracetamol", "500mg", 12.99, 15.99, false, "Effective pain relief and fever reducer"},
		{"Ibuprofen 400mg", "Ibuprofen", "400mg", 14.99, 17.99, false, "Anti-inflammatory pain reliever"},
		{"Aspirin 325mg", "Aspirin", "325mg", 9.99, 13.99, false, "Pain relief and anti-inflammatory"},
		{"Naproxen 220mg", "Naproxen", "220mg", 16.99, 19.99, false, "Long-lasting pain relief"},
		{"Diclofenac Gel", "Diclofenac", "1% gel", 18.99, 22.99, false, "Topical pain relief for joints"},
		{"Tramadol 50mg", "Tramadol", "50mg", 45.99, 52.99, true, "Strong pain relief medication"},
		{"Acetaminophen Extra Strength", "Acetaminophen", "500mg", 11.99, 14.99, false, "Extra strength pain and fever relief"},
		{"Meloxicam 15mg", "Meloxicam", "15mg", 32.99, 38.99, true, "Anti-inflammatory for arthritis"},
		{"Celecoxib 200mg", "Celecoxib", "200mg", 78.99, 89.99, true, "COX-2 inhibitor for arthritis pain"},
		{"Topical Lidocaine", "Lidocaine", "4% cream", 21.99, 26.99, false, "Numbing cream for localized pain"},
	},
	"Wellness": {
		{"Vitamin D3 1000 IU", "Cholecalciferol", "1000 IU", 24.99, 29.99, false, "Essential vitamin for bone and immune health"},
		{"Multivitamin Complex", "Mixed Vitamins", "1 tablet", 21.99, 27.99, false, "Complete daily nutrition support"},
		{"Vitamin B12 1000mcg", "Cyanocobalamin", "1000mcg", 18.99, 23.99, false, "Energy and nervous system support"},
		{"Iron Supplement 65mg", "Iron Sulfate", "65mg", 15.99, 19.99, false, "Iron deficiency supplement"},
		{"Calcium + Vitamin D", "Calcium Carbonate", "500mg", 19.99, 24.99, false, "Bone health support"},
		{"Magnesium 400mg", "Magnesium Oxide", "400mg", 17.99, 22.99, false, "Muscle and nerve function support"},
		{"Zinc 50mg", "Zinc Sulfate", "50mg", 14.99, 18.99, false, "Immune system support"},
		{"Vitamin C 1000mg", "Ascorbic Acid", "1000mg", 16.99, 20.99, false, "Antioxidant and immune support"},
		{"Probiotics 10 Billion CFU", "Mixed Probiotics", "10B CFU", 32.99, 39.99, false, "Digestive health support"},
		{"Turmeric Curcumin", "Curcumin", "500mg", 28.99, 34.99, false, "Anti-inflammatory supplement"},
	},
	"Brain & Mental Health": {
		{"Sertraline 50mg", "Sertraline", "50mg", 42.99, 49.99, true, "SSRI for depression and anxiety"},
		{"Escitalopram 10mg", "Escitalopram", "10mg", 38.99, 45.99, true, "Antidepressant for anxiety disorders"},
		{"Lorazepam 1mg", "Lorazepam", "1mg", 29.99, 35.99, true, "Anti-anxiety medication"},
		{"Zolpidem 10mg", "Zolpidem", "10mg", 35.99, 42.99, true, "Sleep aid medication"},
		{"Melatonin 3mg", "Melatonin", "3mg", 12.99, 16.99, false, "Natural sleep support"},
		{"Donepezil 10mg", "Donepezil", "10mg", 89.99, 105.99, true, "Alzheimer's disease treatment"},
		{"Ginkgo Biloba 120mg", "Ginkgo Extract", "120mg", 19.99, 24.99, false, "Memory and cognitive support"},
		{"Venlafaxine 75mg", "Venlafaxine", "75mg", 46.99, 54.99, true, "SNRI for depression"},
		{"Trazodone 50mg", "Trazodone", "50mg", 31.99, 38.99, true, "Antidepressant with sedative effects"},
		{"Omega-3 Brain Health", "DHA/EPA", "1200mg", 39.99, 46.99, false, "Brain function support"},
	},
	"Eye Care": {
		{"Artificial Tears", "Polyethylene Glycol", "0.4%", 8.99, 11.99, false, "Dry eye relief drops"},
		{"Timolol Eye Drops", "Timolol", "0.5%", 34.99, 41.99, true, "Glaucoma treatment drops"},
		{"Prednisolone Eye Drops", "Prednisolone", "1%", 28.99, 34.99, true, "Anti-inflammatory eye drops"},
		{"Cyclosporine Eye Drops", "Cyclosporine", "0.05%", 145.99, 168.99, true, "Dry eye treatment"},
		{"Allergy Eye Drops", "Ketotifen", "0.025%", 12.99, 16.99, false, "Antihistamine eye drops"},
		{"Lubricating Eye Ointment", "Petrolatum", "3.5g", 9.99, 13.99, false, "Overnight eye protection"},
		{"Dorzolamide Eye Drops", "Dorzolamide", "2%", 52.99, 62.99, true, "Carbonic anhydrase inhibitor for glaucoma"},
		{"Bimatoprost Eye Drops", "Bimatoprost", "0.03%", 78.99, 92.99, true, "Prostaglandin analog for glaucoma"},
		{"Ofloxacin Eye Drops", "Ofloxacin", "0.3%", 18.99, 23.99, true, "Antibiotic eye drops"},
		{"Vitamin A Eye Drops", "Retinyl Palmitate", "0.01%", 15.99, 19.99, false, "Eye health vitamin supplement"},
	},
	"Diabetes Care": {
		{"Metformin 500mg", "Metformin", "500mg", 15.99, 19.99, true, "First-line diabetes medication"},
		{"Glipizide 5mg", "Glipizide", "5mg", 22.99, 27.99, true, "Sulfonylurea for blood sugar control"},
		{"Insulin Glargine", "Insulin Glargine", "100 units/mL", 89.99, 105.99, true, "Long-acting insulin"},
		{"Sitagliptin 100mg", "Sitagliptin", "100mg", 156.99, 182.99, true, "DPP-4 inhibitor for diabetes"},
		{"Glucose Test Strips", "Test Strips", "50 strips", 28.99, 34.99, false, "Blood glucose monitoring strips"},
		{"Lancets 100ct", "Sterile Lancets", "28G", 12.99, 16.99, false, "Blood glucose testing lancets"},
		{"Empagliflozin 10mg", "Empagliflozin", "10mg", 198.99, 229.99, true, "SGLT2 inhibitor for diabetes"},
		{"Liraglutide Injection", "Liraglutide", "1.8mg/3mL", 445.99, 512.99, true, "GLP-1 receptor agonist"},
		{"Alpha-Lipoic Acid", "Alpha-Lipoic Acid", "300mg", 24.99, 29.99, false, "Diabetic neuropathy support"},
		{"Chromium Supplement", "Chromium Picolinate", "200mcg", 16.99, 21.99, false, "Blood sugar support supplement"},
	},
	"General Medicine": {
		{"Amoxicillin 500mg", "Amoxicillin", "500mg", 18.99, 23.99, true, "Antibiotic for bacterial infections"},
		{"Dextromethorphan Syrup", "Dextromethorphan", "15mg/5mL", 8.99, 12.99, false, "Cough suppressant syrup"},
		{"Loratadine 10mg", "Loratadine", "10mg", 12.99, 16.99, false, "Non-drowsy antihistamine"},
		{"Omeprazole 20mg", "Omeprazole", "20mg", 19.99, 24.99, false, "Acid reducer for heartburn"},
		{"Loperamide 2mg", "Loperamide", "2mg", 7.99, 10.99, false, "Anti-diarrheal medication"},
		{"Cetirizine 10mg", "Cetirizine", "10mg", 11.99, 15.99, false, "Allergy relief antihistamine"},
		{"Ranitidine 150mg", "Ranitidine", "150mg", 14.99, 18.99, false, "H2 blocker for acid reflux"},
		{"Pseudoephedrine 30mg", "Pseudoephedrine", "30mg", 9.99, 13.99, false, "Nasal decongestant"},
		{"Azithromycin 250mg", "Azithromycin", "250mg", 32.99, 38.99, true, "Antibiotic for respiratory infections"},
		{"Hydrocortisone Cream", "Hydrocortisone", "1%", 6.99, 9.99, false, "Topical anti-inflammatory cream"},
	},
	"Family Care": {
		{"Children's Acetaminophen", "Acetaminophen", "80mg/0.8mL", 8.99, 11.99, false, "Pain and fever relief for children"},
		{"Baby Saline Drops", "Sodium Chloride", "0.65%", 5.99, 8.99, false, "Nasal congestion relief for babies"},
		{"Prenatal Vitamins", "Mixed Vitamins", "1 tablet", 24.99, 29.99, false, "Essential nutrients for pregnancy"},
		{"Diaper Rash Cream", "Zinc Oxide", "40%", 7.99, 10.99, false, "Protection and healing for diaper rash"},
		{"Electrolyte Solution", "Electrolytes", "8 fl oz", 4.99, 6.99, false, "Rehydration for children"},
		{"Gas Relief Drops", "Simethicone", "20mg/0.3mL", 9.99, 12.99, false, "Gas relief for infants"},
		{"Sunscreen SPF 50", "Zinc Oxide", "SPF 50", 12.99, 16.99, false, "Family sun protection"},
		{"First Aid Antibiotic Ointment", "Neomycin/Polymyxin", "0.5 oz", 8.99, 11.99, false, "Wound care antibiotic ointment"},
		{"Thermometer Digital", "Digital Display", "N/A", 15.99, 19.99, false, "Accurate temperature measurement"},
		{"Bandages Assorted", "Adhesive Bandages", "100 count", 11.99, 14.99, false, "Assorted wound care bandages"},
	},
}
