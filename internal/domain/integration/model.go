package integration

// Patient is the normalized patient record returned to callers.
type Patient struct {
	PatientID    string `json:"patient_id"`
	Name         string `json:"name"`
	BirthDate    string `json:"birth_date"`
	Gender       string `json:"gender"`
	Address      string `json:"address"`
	Contact      string `json:"contact"`
	ResourceType string `json:"resource_type"`
}

// fhirPatient carries the subset of a FHIR R4 Patient resource this adapter
// reads. Everything else in the resource is ignored.
type fhirPatient struct {
	Name []struct {
		Given  []string `json:"given"`
		Family string   `json:"family"`
	} `json:"name"`
	BirthDate string `json:"birthDate"`
	Gender    string `json:"gender"`
	Address   []struct {
		Line []string `json:"line"`
		City string   `json:"city"`
	} `json:"address"`
	Telecom []struct {
		Value string `json:"value"`
	} `json:"telecom"`
}

const unknown = "Unknown"

// normalize flattens the FHIR resource into the adapter's patient shape,
// substituting "Unknown" for any absent element.
func (f *fhirPatient) normalize(patientID string) *Patient {
	p := &Patient{
		PatientID:    patientID,
		Name:         unknown + " " + unknown,
		BirthDate:    unknown,
		Gender:       unknown,
		Address:      unknown + ", " + unknown,
		Contact:      unknown,
		ResourceType: "Patient",
	}

	if len(f.Name) > 0 {
		given, family := unknown, unknown
		if len(f.Name[0].Given) > 0 {
			given = f.Name[0].Given[0]
		}
		if f.Name[0].Family != "" {
			family = f.Name[0].Family
		}
		p.Name = given + " " + family
	}
	if f.BirthDate != "" {
		p.BirthDate = f.BirthDate
	}
	if f.Gender != "" {
		p.Gender = f.Gender
	}
	if len(f.Address) > 0 {
		line, city := unknown, unknown
		if len(f.Address[0].Line) > 0 {
			line = f.Address[0].Line[0]
		}
		if f.Address[0].City != "" {
			city = f.Address[0].City
		}
		p.Address = line + ", " + city
	}
	if len(f.Telecom) > 0 && f.Telecom[0].Value != "" {
		p.Contact = f.Telecom[0].Value
	}

	return p
}
