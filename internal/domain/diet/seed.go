package diet

// Seed suma los dígitos decimales presentes en la identity key.
// Es la semilla de FoodSelector y ScheduleGenerator: función pura de la key.
// TODO: evaluar un hash con mejor distribución (muchas keys comparten suma de dígitos).
func Seed(identityKey string) int {
	sum := 0
	for _, r := range identityKey {
		if r >= '0' && r <= '9' {
			sum += int(r - '0')
		}
	}
	return sum
}
