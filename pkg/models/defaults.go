package models

import "fmt"

// Default dataset written to an empty store on first run.

const unsplash = "https://images.unsplash.com/"

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func dish(id, name, description string, price float64, category ItemCategory, image string, stock int, unit string, cost float64) MenuItem {
	return MenuItem{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
		Category:    category,
		Image:       unsplash + image + "?q=80&w=1000&auto=format&fit=crop",
		Stock:       stock,
		IsAvailable: true,
		Unit:        strPtr(unit),
		CostPrice:   floatPtr(cost),
	}
}

func essential(id, name, description string, image string, stock int, unit string, cost float64, supplier string) MenuItem {
	item := dish(id, name, description, 0, CategoryCookingEssential, image, stock, unit, cost)
	item.Supplier = strPtr(supplier)
	return item
}

// DefaultMenu returns the starter menu, including three cooking essentials.
func DefaultMenu() []MenuItem {
	return []MenuItem{
		dish("a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11", "Pepperoni Pizza", "Classic cheese pizza topped with spicy pepperoni slices and fresh basil.", 250, CategoryFood, "photo-1628840042765-356cda07504e", 20, "Large Box", 120),
		dish("b1eebc99-9c0b-4ef8-bb6d-6bb9bd380a22", "Jollof Rice & Chicken", "Smoky party jollof rice served with seasoned fried chicken and coleslaw.", 150, CategoryFood, "photo-1604329760661-e71dc83f8f26", 50, "Plate", 65),
		dish("c2eebc99-9c0b-4ef8-bb6d-6bb9bd380a33", "White Rice & Stew", "Steamed white rice served with savory red tomato stew and beef.", 100, CategoryFood, "photo-1596797038530-2c107229654b", 40, "Plate", 45),
		dish("d3eebc99-9c0b-4ef8-bb6d-6bb9bd380a44", "Spring Rolls", "Golden crispy pastry rolls filled with vegetables and minced meat.", 60, CategoryFood, "photo-1544025162-d76690b6d029", 100, "Portion (3pcs)", 20),
		dish("e4eebc99-9c0b-4ef8-bb6d-6bb9bd380a55", "Greek Salad", "Fresh cucumbers, cherry tomatoes, feta cheese, and olives.", 80, CategoryFood, "photo-1540189549336-e6e99c3679fe", 25, "Bowl", 35),
		dish("f5eebc99-9c0b-4ef8-bb6d-6bb9bd380a66", "Club Sandwich", "Triple-decker toasted sandwich with chicken, bacon, lettuce, and fries.", 110, CategoryFood, "photo-1528735602780-2552fd46c7af", 30, "Pack", 50),
		dish("g6eebc99-9c0b-4ef8-bb6d-6bb9bd380a77", "Fruit Parfait", "Fresh seasonal berries and fruits topped with creamy yogurt.", 75, CategoryDessert, "photo-1488477181946-6428a0291777", 20, "Cup", 30),
		dish("h7eebc99-9c0b-4ef8-bb6d-6bb9bd380a88", "Goat Meat Pepper Soup", "Traditional hot and spicy broth with tender goat meat cuts.", 130, CategoryFood, "photo-1543339308-43e59d6b73a6", 15, "Bowl", 70),
		dish("i8eebc99-9c0b-4ef8-bb6d-6bb9bd380a99", "Beef Suya", "Spicy grilled beef skewers served with sliced onions and dried pepper.", 100, CategoryFood, "photo-1603360946369-dc9bb6258143", 40, "Portion", 55),
		dish("j9eebc99-9c0b-4ef8-bb6d-6bb9bd380b00", "Fried Rice Special", "Rich stir-fried rice with mixed vegetables, shrimp, and liver.", 120, CategoryFood, "photo-1603133872878-684f108fd1f2", 45, "Plate", 60),
		dish("k0eebc99-9c0b-4ef8-bb6d-6bb9bd380b11", "Spicy Chicken Wings", "Grilled chicken wings tossed in a hot and tangy pepper sauce.", 90, CategoryFood, "photo-1567620832903-9fc6debc209f", 60, "Basket (6pcs)", 40),
		dish("l1eebc99-9c0b-4ef8-bb6d-6bb9bd380b22", "Tea & Biscuits", "Hot creamy milk tea served with a side of crunchy biscuits.", 45, CategorySoftDrink, "photo-1578859942637-2591636c7a6e", 100, "Cup", 15),
		dish("m2eebc99-9c0b-4ef8-bb6d-6bb9bd380b33", "Kebab Skewers", "Seasoned meatballs and vegetables grilled on a skewer.", 95, CategoryFood, "photo-1529042410759-befb1204b468", 30, "Stick", 45),
		dish("n3eebc99-9c0b-4ef8-bb6d-6bb9bd380b44", "Pounded Yam & Egusi", "Soft pounded yam served with rich melon soup and assorted meat.", 180, CategoryFood, "photo-1643656113645-31c379f64267", 20, "Bowl", 90),
		dish("o4eebc99-9c0b-4ef8-bb6d-6bb9bd380b55", "Grilled Fish", "Whole grilled tilapia served with roasted plantain and pepper sauce.", 220, CategoryFood, "photo-1534939561126-855f86b12801", 10, "Whole", 130),
		dish("p5eebc99-9c0b-4ef8-bb6d-6bb9bd380b66", "Crispy Chicken Burger", "Crunchy fried chicken breast in a brioche bun with fresh lettuce.", 120, CategoryFood, "photo-1615297928064-24977384d0f9", 40, "Piece", 65),
		dish("q6eebc99-9c0b-4ef8-bb6d-6bb9bd380b77", "Seafood Okra", "Fresh chopped okra soup loaded with crabs, fish, and prawns.", 190, CategoryFood, "photo-1604152135912-04a022e23696", 15, "Bowl", 100),

		// Inventory essentials have no selling price
		essential("r7eebc99-9c0b-4ef8-bb6d-6bb9bd380b88", "Rice (50kg Bag)", "Premium Long Grain Jasmine Rice", "photo-1586201375761-83865001e31c", 10, "Bag (50kg)", 850, "Global Grains Ltd"),
		essential("s8eebc99-9c0b-4ef8-bb6d-6bb9bd380b99", "Vegetable Oil (25L)", "Pure refined vegetable cooking oil", "photo-1474979266404-7eaacbcd87c5", 5, "Jerrycan (25L)", 450, "Oils & More"),
		essential("t9eebc99-9c0b-4ef8-bb6d-6bb9bd380c00", "Frozen Chicken Carton", "10kg Imported Frozen Chicken Backs", "photo-1615486367564-b58cb69668d2", 12, "Carton (10kg)", 320, "Cold Chain Logistics"),
	}
}

// DefaultTables returns twelve tables t-1..t-12; odd-numbered tables seat four.
func DefaultTables() []Table {
	tables := make([]Table, 0, 12)
	for i := 0; i < 12; i++ {
		seats := 2
		if i%2 == 0 {
			seats = 4
		}
		tables = append(tables, Table{
			ID:     fmt.Sprintf("t-%d", i+1),
			Label:  fmt.Sprintf("Table %d", i+1),
			Seats:  seats,
			Status: TableStatusAvailable,
		})
	}
	return tables
}

// DefaultStaff returns the starter accounts. Passcodes are stored as given.
func DefaultStaff() []Staff {
	member := func(id, name string, role Role, passcode, email, phone string) Staff {
		return Staff{
			ID:       id,
			Name:     name,
			Role:     role,
			Status:   StaffStatusActive,
			Passcode: passcode,
			Email:    strPtr(email),
			Phone:    strPtr(phone),
		}
	}
	return []Staff{
		member("s1", "John Doe", RoleManager, "1234", "john@familyworld.com", "0200000001"),
		member("admin", "Super Admin", RoleAdmin, "0000", "admin@familyworld.com", "0200000000"),
		member("s2", "Jane Smith", RoleChef, "1111", "jane@familyworld.com", "0200000002"),
		member("s3", "Mike Johnson", RoleWaiter, "2222", "mike@familyworld.com", "0200000003"),
	}
}
